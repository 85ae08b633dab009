package agent

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/TEAM-BIRDIE/BeoTT/internal/llm"
)

// Intent labels form a closed set; anything else routes to fallback.
const (
	labelDatabase  = "DATABASE"
	labelKnowledge = "KNOWLEDGE"
	labelTransfer  = "TRANSFER"
	labelGeneral   = "GENERAL"
)

const workingLanguage = "Korean"

// Router runs the per-turn pipeline: normalize -> (refine) -> classify ->
// dispatch -> summarize -> back-translate. It is an explicit, stateless
// object invoked once per turn; nothing here survives between calls.
type Router struct {
	llm      LanguageModel
	store    DataStore
	search   Searcher
	history  History
	transfer *TransferMachine
}

type normalized struct {
	SourceLang   string
	Query        string
	NeedsContext bool
}

// Run routes a fresh utterance (no transfer in flight).
func (r *Router) Run(utterance, username string) Result {
	norm := r.normalize(utterance)

	query := norm.Query
	if norm.NeedsContext {
		query = r.refine(query)
	}

	label := r.classify(query)

	var answer string
	switch label {
	case labelDatabase:
		answer = r.accountAnswer(query, username)
	case labelKnowledge:
		answer = r.knowledgeAnswer(query)
	case labelGeneral:
		answer = r.generalAnswer(norm.Query)
	case labelTransfer:
		res := r.transfer.Step(query, username, nil)
		if !res.Status.Terminal() {
			// Still in flight: hand the context back now, skip summarize.
			res.Context.SourceLanguage = norm.SourceLang
			res.Message = r.backTranslate(res.Message, norm.SourceLang)
			return Result{Transfer: res}
		}
		r.summarize(query, res.Message)
		res.Message = r.backTranslate(res.Message, norm.SourceLang)
		return Result{Transfer: res}
	default:
		answer = fallbackMessage
	}

	r.summarize(query, answer)
	return Result{Answer: r.backTranslate(answer, norm.SourceLang)}
}

// normalize detects the source language and produces the Korean working
// query. It fails open: any model or parse failure leaves the input as-is
// and requests context refinement.
func (r *Router) normalize(utterance string) normalized {
	fallback := normalized{SourceLang: workingLanguage, Query: utterance, NeedsContext: true}

	out, err := r.llm.Complete(fmt.Sprintf(llm.TranslationPrompt, utterance))
	if err != nil {
		log.Printf("normalize failed, keeping raw input: %v", err)
		return fallback
	}

	var parsed struct {
		SourceLanguage string `json:"source_language"`
		KoreanQuery    string `json:"korean_query"`
		NeedsContext   *bool  `json:"needs_context"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(out)), &parsed); err != nil {
		log.Printf("normalize returned unparseable JSON, keeping raw input: %v", err)
		return fallback
	}

	n := normalized{SourceLang: parsed.SourceLanguage, Query: parsed.KoreanQuery, NeedsContext: true}
	if n.SourceLang == "" {
		n.SourceLang = workingLanguage
	}
	if strings.TrimSpace(n.Query) == "" {
		n.Query = utterance
	}
	if parsed.NeedsContext != nil {
		n.NeedsContext = *parsed.NeedsContext
	}
	return n
}

// refine rewrites the query using prior-turn history. Fails open to the
// unrefined query.
func (r *Router) refine(query string) string {
	historyText, err := r.history.Read()
	if err != nil || strings.TrimSpace(historyText) == "" {
		historyText = "이전 대화 기록 없음(No previous conversation history)."
	}

	out, err := r.llm.Complete(fmt.Sprintf(llm.RefinementPrompt, historyText, query))
	if err != nil {
		log.Printf("refine failed, keeping query: %v", err)
		return query
	}
	refined := strings.TrimSpace(out)
	if refined == "" {
		return query
	}
	return refined
}

// classify maps the query to one of the fixed labels. Anything the model
// says outside that set lands in the fallback arm of the dispatch switch.
func (r *Router) classify(query string) string {
	out, err := r.llm.Complete(fmt.Sprintf(llm.RouterPrompt, query))
	if err != nil {
		log.Printf("classify failed: %v", err)
		return ""
	}
	label := strings.NewReplacer("'", "", `"`, "", ".", "").Replace(out)
	return strings.ToUpper(strings.TrimSpace(label))
}

// summarize appends the finished turn to cross-turn history.
func (r *Router) summarize(query, answer string) {
	if answer == "" {
		return
	}
	if err := r.history.Append(query, answer); err != nil {
		log.Printf("failed to append history: %v", err)
	}
}

// backTranslate returns the answer in the user's language, or the Korean
// text untouched when translation is unnecessary or fails.
func (r *Router) backTranslate(answer, sourceLang string) string {
	if answer == "" || strings.Contains(sourceLang, workingLanguage) || strings.Contains(sourceLang, "한국어") {
		return answer
	}

	out, err := r.llm.Complete(fmt.Sprintf(llm.ReTranslationPrompt, sourceLang, answer))
	if err != nil {
		log.Printf("back-translation to %s failed, returning Korean text: %v", sourceLang, err)
		return answer
	}
	translated := strings.TrimSpace(out)
	if translated == "" {
		return answer
	}
	return translated
}
