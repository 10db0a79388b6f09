package domain

import "time"

// ArticleStatus is the availability of a physical article.
type ArticleStatus string

const (
	ArticleAvailable    ArticleStatus = "available"
	ArticleOnLoan       ArticleStatus = "on_loan"
	ArticleMaintenance  ArticleStatus = "maintenance"
	ArticleOutOfService ArticleStatus = "out_of_service"
)

// ArticleState is the physical condition of an article. The same scale is
// recorded on a LoanArticle when the article comes back.
type ArticleState string

const (
	StateNew         ArticleState = "new"
	StateVeryGood    ArticleState = "very_good"
	StateGood        ArticleState = "good"
	StateUsed        ArticleState = "used"
	StateNeedsRepair ArticleState = "needs_repair"
)

// ArticleStates lists every valid condition, best first.
var ArticleStates = []ArticleState{StateNew, StateVeryGood, StateGood, StateUsed, StateNeedsRepair}

// ArticleStatuses lists every valid status.
var ArticleStatuses = []ArticleStatus{ArticleAvailable, ArticleOnLoan, ArticleMaintenance, ArticleOutOfService}

// Valid reports whether s is one of the known conditions.
func (s ArticleState) Valid() bool {
	for _, v := range ArticleStates {
		if s == v {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s ArticleStatus) Valid() bool {
	for _, v := range ArticleStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Article is a donated physical item that can be lent out.
type Article struct {
	ArticleID   string        `json:"articleID" db:"article_id"`
	AgencyID    string        `json:"agencyID" db:"agency_id"`
	Name        string        `json:"name" db:"name"`
	Category    string        `json:"category" db:"category"`
	Description string        `json:"description" db:"description"`
	Status      ArticleStatus `json:"status" db:"status"`
	State       ArticleState  `json:"state" db:"state"`
	DonorID     *string       `json:"donorID,omitempty" db:"donor_id"`
	DonatedAt   *time.Time    `json:"donatedAt,omitempty" db:"donated_at"`
	AuditFields
}

// IsLendable reports whether the article can be attached to a new loan.
func (a Article) IsLendable() bool {
	return a.Status == ArticleAvailable
}

// ArticleFilter narrows article listings.
type ArticleFilter struct {
	Status   *ArticleStatus
	Category string
	Search   string
	Limit    int
	Offset   int
}
