package domain

type User struct {
	ID        int64  `db:"id" json:"id"`
	GoogleID  string `db:"google_id" json:"-"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Picture   string `db:"picture" json:"picture"`
	CreatedAt string `db:"created_at" json:"-"`
}

// GoogleProfile is the verified payload of a Google ID token.
type GoogleProfile struct {
	Subject string
	Name    string
	Email   string
	Picture string
}
