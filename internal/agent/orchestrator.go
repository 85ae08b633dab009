package agent

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Orchestrator is the entry point for one conversation turn: it either
// resumes an in-flight transfer with the caller-supplied context, or starts
// a fresh routing pass.
type Orchestrator struct {
	router   *Router
	transfer *TransferMachine
}

// Input is the caller's contract for one turn.
type Input struct {
	Utterance string          `json:"utterance"`
	Username  string          `json:"username"`
	Context   json.RawMessage `json:"context,omitempty"`
}

func New(store DataStore, lm LanguageModel, search Searcher, hist History, baseCurrency string) *Orchestrator {
	machine := NewTransferMachine(store, lm, baseCurrency)
	return &Orchestrator{
		router: &Router{
			llm:      lm,
			store:    store,
			search:   search,
			history:  hist,
			transfer: machine,
		},
		transfer: machine,
	}
}

// Handle runs one turn.
func (o *Orchestrator) Handle(in Input) Result {
	tc, err := DecodeContext(in.Context)
	if err != nil {
		return Result{Transfer: errorResult("대화 상태가 올바르지 않습니다. 처음부터 다시 시도해주세요.")}
	}
	if tc != nil {
		return Result{Transfer: o.resume(in.Utterance, in.Username, tc)}
	}
	return o.router.Run(in.Utterance, in.Username)
}

// resume feeds a reply into the in-flight transfer. Replies that are
// sentinels, PINs or bare amounts skip translation; everything else is
// normalized first so a recipient name typed in any language still resolves.
func (o *Orchestrator) resume(utterance, username string, tc *Context) *TransferResult {
	sourceLang := tc.SourceLanguage
	if sourceLang == "" {
		sourceLang = workingLanguage
	}

	query := utterance
	if !skipTranslation(utterance) {
		norm := o.router.normalize(utterance)
		query = norm.Query
		if sourceLang == workingLanguage && norm.SourceLang != workingLanguage {
			sourceLang = norm.SourceLang
		}
	}

	res := o.transfer.Step(query, username, tc)
	res.Message = o.router.backTranslate(res.Message, sourceLang)
	if res.Context != nil {
		res.Context.SourceLanguage = sourceLang
	}
	return res
}

// skipTranslation recognizes replies the translation pass would only
// mangle: confirmation sentinels, pure-digit strings of any length, and
// short non-alphabetic input (PIN codes, bare amounts like "50,000").
func skipTranslation(utterance string) bool {
	s := strings.TrimSpace(utterance)
	upper := strings.ToUpper(s)
	if upper == "__YES__" || upper == "__NO__" {
		return true
	}
	if s != "" && allDigits(s) {
		return true
	}
	if len([]rune(s)) <= 10 && !containsLetter(s) {
		return true
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
