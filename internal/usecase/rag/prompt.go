package rag

import "strings"

// FallbackAnswer is what the model is told to say when the cookbook has nothing relevant.
const FallbackAnswer = "Maaf, saya tidak menemukan resep yang relevan di E-book Anda."

const contextHeader = "\n\n--KONTEKS RESEP--\n\n"

const instruction = "Anda adalah asisten resep khusus yang hanya menjawab berdasarkan KONTEKS RESEP " +
	"yang disediakan. Jawab pertanyaan pengguna di bawah ini menggunakan informasi dari konteks tersebut. " +
	"Jika konteks tidak mengandung resep yang relevan, katakan saja '" + FallbackAnswer + "'"

// buildContext joins retrieved segments in retrieval order under the context header.
func buildContext(segments []string) string {
	return contextHeader + strings.Join(segments, "\n\n")
}

func buildPrompt(query, context string) string {
	var sb strings.Builder
	sb.WriteString(instruction)
	sb.WriteString("\n\nKONTEKS RESEP:\n---\n")
	sb.WriteString(context)
	sb.WriteString("\n---\n\nPERTANYAAN PENGGUNA: ")
	sb.WriteString(query)
	return sb.String()
}
