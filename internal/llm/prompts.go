package llm

// TranslationPrompt detects the source language of an utterance and produces
// a Korean working query. The agent fails open if the JSON cannot be parsed.
const TranslationPrompt = `You are a language normalizer for a Korean financial assistant.
The user may write in any language (Korean, English, Vietnamese, Chinese, ...).

You MUST respond with ONLY raw JSON. No explanation. No markdown.

{
  "source_language": "English name of the detected language, e.g. Korean, English, Vietnamese",
  "korean_query": "the user's question translated into natural Korean (keep it as-is when already Korean)",
  "needs_context": true or false
}

Set "needs_context" to true when the question contains pronouns, ellipsis or
references that can only be resolved with earlier conversation turns
(e.g. "그럼 그 사람한테는?", "what about that one?"). Otherwise false.

User message:
%s`

// RefinementPrompt rewrites a query using conversation history to resolve
// pronouns and ellipsis.
const RefinementPrompt = `You rewrite a Korean question so it is self-contained.
Use the conversation history below only to resolve references (pronouns,
omitted subjects, "그거", "아까 말한"). If the question is already
self-contained, return it unchanged.

Respond with ONLY the rewritten Korean question. No explanation.

[Conversation history]
%s

[Question]
%s`

// RouterPrompt classifies a query into one of the fixed capability labels.
const RouterPrompt = `Classify the Korean question into exactly one category.

- DATABASE: the user's own accounts, balances or transaction history
- KNOWLEDGE: the meaning of a financial term or concept
- TRANSFER: sending money to someone
- GENERAL: small talk or anything else a friendly assistant can answer

Respond with ONLY the category label. No quotes, no punctuation, no explanation.

Question:
%s`

// GeneralPrompt answers small talk in the persona of the assistant.
const GeneralPrompt = `You are 비오티, a friendly Korean financial assistant.
Answer the user's message in polite, natural Korean. Keep it short.
Do not invent account data; you only chat here.

User message:
%s`

// ReTranslationPrompt translates a final Korean answer back into the user's
// language.
const ReTranslationPrompt = `Translate the Korean answer below into %s.
Preserve numbers, amounts and names exactly. Respond with ONLY the
translation, no explanation.

[Korean answer]
%s`

// TransferExtractPrompt pulls the three transfer slots out of an utterance.
// Any slot the user did not state must be null; the extractor never guesses.
const TransferExtractPrompt = `You are a strict JSON parser for money transfer requests in Korean.

You MUST respond with ONLY raw JSON. No explanation. No markdown.

{
  "target": "recipient as the user said it (name, nickname or relationship)" or null,
  "amount": number or null,
  "currency": "ISO code like KRW, USD, JPY" or null
}

Rules:
- "50000원", "5만원" -> amount 50000, currency "KRW"
- "100달러", "$100" -> amount 100, currency "USD"
- When a field is not stated, use null. NEVER guess.

User message:
%s`

// ContactMatchPrompt asks for the single best semantic match from a fixed
// candidate list. The agent rejects any name not in the list.
const ContactMatchPrompt = `The user wants to send money to someone. Pick the single best matching
contact from the candidate list, judging by meaning (e.g. "엄마" matches a
contact whose relationship is "mom").

Candidates:
%s

User input: %s

Respond with ONLY the exact Name of the best candidate, or NONE if no
candidate is a reasonable match. No explanation.`

// AccountAnswerPrompt phrases an answer from the member's own account data.
const AccountAnswerPrompt = `You are a Korean financial assistant. Answer the user's question using ONLY
the account data below. Amounts are in KRW unless stated otherwise.
If the data does not contain the answer, say so politely. Answer in Korean.

[Account data]
%s

[Question]
%s`

// KnowledgeAnswerPrompt composes an answer from retrieved term definitions.
const KnowledgeAnswerPrompt = `You are a Korean financial expert helping beginners. Answer the question
based ONLY on the reference terms below. Explain simply, in Korean.

[Reference]
%s

[Question]
%s`
