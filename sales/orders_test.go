package sales_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OleksUA-dev/magento-go/core/transport"
	"github.com/OleksUA-dev/magento-go/sales"
	"github.com/OleksUA-dev/magento-go/search"
)

type fakeDoer struct {
	lastReq *transport.Request
	body    string
	err     error
}

func (f *fakeDoer) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(f.body)}, nil
}

func (f *fakeDoer) DoJSON(ctx context.Context, req *transport.Request, out any) error {
	resp, err := f.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.DecodeJSON(out)
}

func TestOrders_List(t *testing.T) {
	t.Parallel()

	doer := &fakeDoer{body: `{"items":[{"entity_id":1,"status":"complete"}],"total_count":1}`}
	orders := sales.NewOrders(doer)

	result, err := orders.List(context.Background(), search.New().
		Where("created_at", search.ConditionFrom, "2026-01-01").
		SortBy("created_at", search.Descending))
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "from", doer.lastReq.Query.Get("searchCriteria[filterGroups][0][filters][0][conditionType]"))
	assert.Equal(t, "DESC", doer.lastReq.Query.Get("searchCriteria[sortOrders][0][direction]"))
}

func TestOrders_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("fetches order", func(t *testing.T) {
		t.Parallel()

		doer := &fakeDoer{body: `{"entity_id":42,"increment_id":"000000042","status":"processing","grand_total":199.99}`}
		orders := sales.NewOrders(doer)

		order, err := orders.GetByID(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, 42, order.EntityID)
		assert.Equal(t, "processing", order.Status)
		assert.InDelta(t, 199.99, order.GrandTotal, 0.001)
		assert.Equal(t, "rest/V1/orders/42", doer.lastReq.Path)
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		t.Parallel()

		orders := sales.NewOrders(&fakeDoer{})
		_, err := orders.GetByID(context.Background(), 0)
		assert.ErrorIs(t, err, sales.ErrInvalidOrderID)
	})
}

func TestOrders_GetByIncrementID(t *testing.T) {
	t.Parallel()

	t.Run("searches by increment id", func(t *testing.T) {
		t.Parallel()

		doer := &fakeDoer{body: `{"items":[{"entity_id":7,"increment_id":"000000777"}],"total_count":1}`}
		orders := sales.NewOrders(doer)

		order, err := orders.GetByIncrementID(context.Background(), "000000777")
		require.NoError(t, err)
		assert.Equal(t, 7, order.EntityID)

		assert.Equal(t, "increment_id", doer.lastReq.Query.Get("searchCriteria[filterGroups][0][filters][0][field]"))
		assert.Equal(t, "000000777", doer.lastReq.Query.Get("searchCriteria[filterGroups][0][filters][0][value]"))
		assert.Equal(t, "1", doer.lastReq.Query.Get("searchCriteria[pageSize]"))
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		doer := &fakeDoer{body: `{"items":[],"total_count":0}`}
		orders := sales.NewOrders(doer)

		_, err := orders.GetByIncrementID(context.Background(), "000000001")
		assert.ErrorIs(t, err, sales.ErrOrderNotFound)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		t.Parallel()

		orders := sales.NewOrders(&fakeDoer{})
		_, err := orders.GetByIncrementID(context.Background(), "")
		assert.ErrorIs(t, err, sales.ErrEmptyIncrementID)
	})
}

func TestOrders_ListByStatus(t *testing.T) {
	t.Parallel()

	doer := &fakeDoer{body: `{"items":[{"entity_id":1},{"entity_id":2}],"total_count":2}`}
	orders := sales.NewOrders(doer)

	result, err := orders.ListByStatus(context.Background(), sales.StatusPending, 1, 25)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, "pending", doer.lastReq.Query.Get("searchCriteria[filterGroups][0][filters][0][value]"))
	assert.Equal(t, "25", doer.lastReq.Query.Get("searchCriteria[pageSize]"))

	_, err = orders.ListByStatus(context.Background(), "", 0, 0)
	assert.ErrorIs(t, err, sales.ErrEmptyStatus)
}

func TestOrders_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("posts status history", func(t *testing.T) {
		t.Parallel()

		doer := &fakeDoer{body: `true`}
		orders := sales.NewOrders(doer)

		err := orders.UpdateStatus(context.Background(), 42, sales.StatusProcessing, "payment confirmed", true)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, doer.lastReq.Method)
		assert.Equal(t, "rest/V1/orders/42/comments", doer.lastReq.Path)

		body, ok := doer.lastReq.Body.(map[string]any)
		require.True(t, ok)
		history, ok := body["statusHistory"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "processing", history["status"])
		assert.Equal(t, "payment confirmed", history["comment"])
		assert.Equal(t, 1, history["is_customer_notified"])
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		orders := sales.NewOrders(&fakeDoer{})
		assert.ErrorIs(t, orders.UpdateStatus(context.Background(), -1, "processing", "", false), sales.ErrInvalidOrderID)
		assert.ErrorIs(t, orders.UpdateStatus(context.Background(), 1, "", "", false), sales.ErrEmptyStatus)
	})
}

func TestOrders_AddComment(t *testing.T) {
	t.Parallel()

	doer := &fakeDoer{body: `true`}
	orders := sales.NewOrders(doer)

	require.NoError(t, orders.AddComment(context.Background(), 9, "courier delayed", false))

	body := doer.lastReq.Body.(map[string]any)
	history := body["statusHistory"].(map[string]any)
	assert.Equal(t, "courier delayed", history["comment"])
	_, hasStatus := history["status"]
	assert.False(t, hasStatus, "comments must not change the status")
}

func TestOrder_ShippingAddress(t *testing.T) {
	t.Parallel()

	raw := `{
		"entity_id": 1,
		"extension_attributes": {
			"shipping_assignments": [{
				"shipping": {
					"address": {"city": "Kyiv", "country_id": "UA"},
					"method": "flatrate_flatrate"
				}
			}]
		}
	}`

	var order sales.Order
	require.NoError(t, json.Unmarshal([]byte(raw), &order))

	addr := order.ShippingAddress()
	require.NotNil(t, addr)
	assert.Equal(t, "Kyiv", addr.City)

	var empty sales.Order
	assert.Nil(t, empty.ShippingAddress())
}
