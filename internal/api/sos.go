package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"MindTrace/internal/models"
)

func (c *Client) ListSOSContacts(ctx context.Context) ([]models.SOSContact, error) {
	var contacts []models.SOSContact
	if err := c.doJSON(ctx, "sos.list_contacts", http.MethodGet, "/sos/contacts", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Client) CreateSOSContact(ctx context.Context, contact models.SOSContact) (*models.SOSContact, error) {
	var created models.SOSContact
	if err := c.doJSON(ctx, "sos.create_contact", http.MethodPost, "/sos/contacts", contact, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteSOSContact(ctx context.Context, id int) error {
	return c.doJSON(ctx, "sos.delete_contact", http.MethodDelete, pathID("/sos/contacts", id), nil, nil)
}

func (c *Client) GetSOSConfig(ctx context.Context) (*models.SOSConfig, error) {
	var cfg models.SOSConfig
	if err := c.doJSON(ctx, "sos.get_config", http.MethodGet, "/sos/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) UpdateSOSConfig(ctx context.Context, cfg models.SOSConfig) (*models.SOSConfig, error) {
	var updated models.SOSConfig
	if err := c.doJSON(ctx, "sos.update_config", http.MethodPut, "/sos/config", cfg, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) CreateAlert(ctx context.Context, create models.AlertCreate) (*models.Alert, error) {
	var alert models.Alert
	if err := c.doJSON(ctx, "sos.create_alert", http.MethodPost, "/sos/alerts", create, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// ListAlerts fetches alert history, newest first. status filters
// server-side when non-empty.
func (c *Client) ListAlerts(ctx context.Context, limit int, status string) ([]models.Alert, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if status != "" {
		q.Set("status", status)
	}
	path := "/sos/alerts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var alerts []models.Alert
	if err := c.doJSON(ctx, "sos.list_alerts", http.MethodGet, path, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetActiveAlert returns nil without error when no alert is in progress;
// the server answers with a JSON null.
func (c *Client) GetActiveAlert(ctx context.Context) (*models.Alert, error) {
	var alert *models.Alert
	if err := c.doJSON(ctx, "sos.get_active_alert", http.MethodGet, "/sos/alerts/active", nil, &alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (c *Client) UpdateAlert(ctx context.Context, id int, update models.AlertUpdate) (*models.Alert, error) {
	var alert models.Alert
	if err := c.doJSON(ctx, "sos.update_alert", http.MethodPut, pathID("/sos/alerts", id), update, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// ClearAlertHistory deletes all resolved alerts server-side.
func (c *Client) ClearAlertHistory(ctx context.Context) error {
	return c.doJSON(ctx, "sos.clear_history", http.MethodDelete, "/sos/alerts/history", nil, nil)
}
