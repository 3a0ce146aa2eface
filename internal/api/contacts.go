package api

import (
	"context"
	"net/http"

	"MindTrace/internal/models"
)

func (c *Client) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.doJSON(ctx, "contacts.list", http.MethodGet, "/contacts/", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Client) GetContact(ctx context.Context, id int) (*models.Contact, error) {
	var contact models.Contact
	if err := c.doJSON(ctx, "contacts.get", http.MethodGet, pathID("/contacts", id), nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) CreateContact(ctx context.Context, contact models.Contact) (*models.Contact, error) {
	var created models.Contact
	if err := c.doJSON(ctx, "contacts.create", http.MethodPost, "/contacts/", contact, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateContactWithPhoto registers a contact together with a reference
// photo for recognition. The photo travels as the multipart field "photo".
func (c *Client) CreateContactWithPhoto(ctx context.Context, contact models.Contact, filename string, photo []byte) (*models.Contact, error) {
	fields := map[string]string{
		"name":         contact.Name,
		"relationship": contact.Relationship,
	}
	if contact.RelationshipDetail != "" {
		fields["relationship_detail"] = contact.RelationshipDetail
	}
	if contact.PhoneNumber != "" {
		fields["phone_number"] = contact.PhoneNumber
	}
	if contact.Email != "" {
		fields["email"] = contact.Email
	}
	if contact.Notes != "" {
		fields["notes"] = contact.Notes
	}
	if contact.VisitFrequency != "" {
		fields["visit_frequency"] = contact.VisitFrequency
	}

	var created models.Contact
	err := c.doMultipart(ctx, "contacts.create_with_photo", "/contacts/with-photo", fields, "photo", filename, photo, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateContact(ctx context.Context, id int, contact models.Contact) (*models.Contact, error) {
	var updated models.Contact
	if err := c.doJSON(ctx, "contacts.update", http.MethodPut, pathID("/contacts", id), contact, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteContact(ctx context.Context, id int) error {
	return c.doJSON(ctx, "contacts.delete", http.MethodDelete, pathID("/contacts", id), nil, nil)
}
