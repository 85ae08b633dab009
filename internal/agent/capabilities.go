package agent

import (
	"fmt"
	"log"
	"strings"

	"github.com/TEAM-BIRDIE/BeoTT/internal/llm"
)

const fallbackMessage = "죄송해요, 질문의 의도를 정확히 파악하지 못했습니다."

// accountAnswer answers balance/ledger questions from the member's own data.
// The data is fetched with parameterized queries and handed to the model as
// plain text; the model only phrases the answer, it never writes queries.
func (r *Router) accountAnswer(query, username string) string {
	member, err := r.store.GetMember(username)
	if err != nil {
		return "사용자 정보를 찾을 수 없습니다."
	}

	accounts, err := r.store.ListAccounts(member.ID)
	if err != nil {
		log.Printf("account lookup failed: %v", err)
		return "계좌 정보를 조회하지 못했습니다."
	}
	entries, err := r.store.RecentLedger(member.ID, 20)
	if err != nil {
		log.Printf("ledger lookup failed: %v", err)
		return "거래 내역을 조회하지 못했습니다."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[회원] %s (%s)\n\n[계좌]\n", member.KoreanName, member.Username)
	for _, a := range accounts {
		primary := ""
		if a.IsPrimary {
			primary = " (주계좌)"
		}
		fmt.Fprintf(&b, "- %s %s%s: 잔액 %s원\n", a.BankName, a.AccountNumber, primary, formatAmount(a.Balance))
	}
	b.WriteString("\n[최근 거래]\n")
	if len(entries) == 0 {
		b.WriteString("- 거래 내역 없음\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %s %s원 (잔액 %s원)\n",
			e.CreatedAt, e.Description, formatAmount(e.Amount), formatAmount(e.BalanceAfter))
	}

	out, err := r.llm.Complete(fmt.Sprintf(llm.AccountAnswerPrompt, b.String(), query))
	if err != nil {
		log.Printf("account answer generation failed: %v", err)
		return "데이터 조회 중 오류가 발생했습니다."
	}
	return strings.TrimSpace(out)
}

// knowledgeAnswer looks up financial terms and lets the model compose an
// answer from the retrieved passages only.
func (r *Router) knowledgeAnswer(query string) string {
	terms, err := r.search.SearchTerms(query, 3)
	if err != nil {
		log.Printf("knowledge search failed: %v", err)
		return "지식 검색 중 오류가 발생했습니다."
	}
	if len(terms) == 0 {
		return "죄송해요, 관련된 금융 용어를 찾지 못했습니다."
	}

	var b strings.Builder
	for _, t := range terms {
		fmt.Fprintf(&b, "Term: %s\nDefinition: %s\n\n", t.Word, t.Definition)
	}

	out, err := r.llm.Complete(fmt.Sprintf(llm.KnowledgeAnswerPrompt, b.String(), query))
	if err != nil {
		log.Printf("knowledge answer generation failed: %v", err)
		return "답변을 생성하지 못했습니다."
	}
	return strings.TrimSpace(out)
}

// generalAnswer handles small talk.
func (r *Router) generalAnswer(query string) string {
	out, err := r.llm.Complete(fmt.Sprintf(llm.GeneralPrompt, query))
	if err != nil {
		log.Printf("general answer generation failed: %v", err)
		return "죄송해요, 지금은 답변을 드릴 수 없습니다."
	}
	return strings.TrimSpace(out)
}
