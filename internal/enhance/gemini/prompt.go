package gemini

import "resume-builder/internal/enhance"

const summaryPrompt = `You are an expert resume writer. Rewrite the professional summary the user provides so it is concise, impactful, and written in active voice. Keep it under 100 words, do not invent facts, and return only the rewritten summary with no preamble or quotes.`

const descriptionPrompt = `You are an expert resume writer. Rewrite the job description the user provides as achievement-focused bullet points in active voice with strong verbs. Do not invent facts or numbers, and return only the rewritten description with no preamble or quotes.`

func systemPrompt(kind enhance.Kind) string {
	if kind == enhance.KindDescription {
		return descriptionPrompt
	}
	return summaryPrompt
}
