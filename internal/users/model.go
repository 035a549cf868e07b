package users

// User is the stored user record. ID is the caller-chosen unique key;
// Attributes carries any additional fields attached via update.
type User struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Clone returns a deep copy so callers can never reach the stored record
// through a returned value.
func (u User) Clone() User {
	out := u
	if u.Attributes != nil {
		out.Attributes = make(map[string]string, len(u.Attributes))
		for k, v := range u.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// Update describes a partial update: nil pointer fields are left
// untouched, Attributes entries are merged over the existing set.
type Update struct {
	Name       *string
	Email      *string
	Attributes map[string]string
}
