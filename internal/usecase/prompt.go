package usecase

// systemInstruction pins the reply contract: a bare JSON object carrying
// answer and sources fields and nothing else.
const systemInstruction = "You are a concise financial assistant. Answer simply. " +
	"Cite sources for your answers using URLs or publication names. " +
	"Return a JSON object exactly with fields: answer (string), sources (array of URLs or citations, may be empty). " +
	"Do not add any extra text outside the JSON."

// buildPrompt prepends the system instruction to the user's question. The
// question is passed through verbatim, empty or not.
func buildPrompt(question string) string {
	return systemInstruction + "\nUser: " + question
}
