package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
)

func (c *Client) ListAlbums(ctx context.Context) ([]model.Album, error) {
	var out struct {
		Items []model.Album `json:"items"`
	}
	if err := c.get(ctx, "/album", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListEvents(ctx context.Context, activeOnly bool) ([]model.Event, error) {
	query := url.Values{}
	if activeOnly {
		query.Set("active", strconv.FormatBool(true))
	}

	var out struct {
		Items []model.Event `json:"items"`
	}
	if err := c.get(ctx, "/event", query, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) GetEvent(ctx context.Context, eventID int64) (model.Event, error) {
	var event model.Event
	if err := c.get(ctx, fmt.Sprintf("/event/%d", eventID), nil, &event); err != nil {
		return model.Event{}, err
	}
	return event, nil
}
