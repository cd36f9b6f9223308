package account

// Account identifies a logged-in principal.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// State is the persisted document. A nil Account means "not logged in".
type State struct {
	Account *Account `json:"account"`
}

func (a *Account) clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
