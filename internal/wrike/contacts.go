package wrike

import (
	"context"
	"net/http"
)

// GetContacts returns up to MaxBatchIDs contacts by ID.
func (c *Client) GetContacts(ctx context.Context, contactIDs []string, fields string) ([]Contact, error) {
	ids, err := joinBatchIDs("contact", contactIDs)
	if err != nil {
		return nil, err
	}
	return fetch[[]Contact](ctx, c, http.MethodGet, "/contacts/"+ids, optionalFieldsQuery(fields), nil)
}

// ListContacts returns all contacts, or only the token owner when me is true.
func (c *Client) ListContacts(ctx context.Context, me bool, fields string) ([]Contact, error) {
	query := optionalFieldsQuery(fields)
	if me {
		query.Set("me", "true")
	}
	return fetch[[]Contact](ctx, c, http.MethodGet, "/contacts", query, nil)
}

// Me returns the contact owning the access token. It doubles as a token check.
func (c *Client) Me(ctx context.Context) (*Contact, error) {
	contacts, err := c.ListContacts(ctx, true, "")
	if err != nil {
		return nil, err
	}
	return first(contacts, "contact", "me")
}

// ContactQuery selects contacts: ContactIDs > all (optionally only me).
type ContactQuery struct {
	ContactIDs []string
	Me         bool
	Fields     string
}

// Mode returns the lookup the query dispatches to.
func (q ContactQuery) Mode() LookupMode {
	if len(normalizeIDs(q.ContactIDs)) > 0 {
		return ModeBatch
	}
	return ModeAll
}

// FindContacts runs the lookup selected by q.
func (c *Client) FindContacts(ctx context.Context, q ContactQuery) ([]Contact, error) {
	if q.Mode() == ModeBatch {
		return c.GetContacts(ctx, q.ContactIDs, q.Fields)
	}
	return c.ListContacts(ctx, q.Me, q.Fields)
}
