package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sunshinej01/second-hand/internal/models"
)

const productsPath = "/rest/v1/products"

// ListListings fetches all listing rows, newest first.
func (c *Client) ListListings(ctx context.Context) ([]models.ListingRow, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	var rows []models.ListingRow
	if err := c.do(ctx, http.MethodGet, productsPath, q, "", "", nil, &rows); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return rows, nil
}

// GetListing fetches one row by identifier. A missing row is (nil, nil).
func (c *Client) GetListing(ctx context.Context, id int64) (*models.ListingRow, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+strconv.FormatInt(id, 10))
	q.Set("limit", "1")

	var rows []models.ListingRow
	if err := c.do(ctx, http.MethodGet, productsPath, q, "", "", nil, &rows); err != nil {
		return nil, fmt.Errorf("get listing %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// CreateListing inserts one row and returns the inserted rows, including the
// backend-assigned identifier.
func (c *Client) CreateListing(ctx context.Context, token string, row models.ListingRow) ([]models.ListingRow, error) {
	payload := map[string]interface{}{
		"title":        row.Title,
		"description":  row.Description,
		"price":        row.Price,
		"location":     row.Location,
		"trade_method": row.TradeMethod,
		"image_data":   row.ImageData,
		"category":     row.Category,
		"status":       row.Status,
	}
	if row.UserID != "" {
		payload["user_id"] = row.UserID
	}

	var inserted []models.ListingRow
	err := c.do(ctx, http.MethodPost, productsPath, nil, token, "return=representation",
		[]map[string]interface{}{payload}, &inserted)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return inserted, nil
}

// UpdateListing patches one row and returns the updated representation.
// No route exposes this yet; it completes the client's CRUD surface.
func (c *Client) UpdateListing(ctx context.Context, token string, id int64, patch map[string]interface{}) ([]models.ListingRow, error) {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))

	var updated []models.ListingRow
	err := c.do(ctx, http.MethodPatch, productsPath, q, token, "return=representation", patch, &updated)
	if err != nil {
		return nil, fmt.Errorf("update listing %d: %w", id, err)
	}
	return updated, nil
}

// DeleteListing removes one row. No route exposes this yet.
func (c *Client) DeleteListing(ctx context.Context, token string, id int64) error {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))

	if err := c.do(ctx, http.MethodDelete, productsPath, q, token, "", nil, nil); err != nil {
		return fmt.Errorf("delete listing %d: %w", id, err)
	}
	return nil
}

// SearchListings matches the query as a case-insensitive substring of the
// title or description, newest first.
func (c *Client) SearchListings(ctx context.Context, query string) ([]models.ListingRow, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("or", fmt.Sprintf("(title.ilike.*%s*,description.ilike.*%s*)", query, query))
	q.Set("order", "created_at.desc")

	var rows []models.ListingRow
	if err := c.do(ctx, http.MethodGet, productsPath, q, "", "", nil, &rows); err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return rows, nil
}
