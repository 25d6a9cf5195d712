package service_test

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"

	"github.com/google/uuid"

	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/store"
)

// memEntities is an in-memory stand-in for the entity store, keeping the
// same key-assignment behavior: row key is a fresh UUID, partition key is
// derived from the grouping field with the documented fallbacks.
type memEntities struct {
	customers map[string]model.Customer
	products  map[string]model.Product
	orders    map[string]model.Order

	failScan error // returned by List* when set
}

func newMemEntities() *memEntities {
	return &memEntities{
		customers: make(map[string]model.Customer),
		products:  make(map[string]model.Product),
		orders:    make(map[string]model.Order),
	}
}

func entityKey(partitionKey, rowKey string) string {
	return partitionKey + "|" + rowKey
}

func (m *memEntities) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	if m.failScan != nil {
		return nil, m.failScan
	}
	var all []model.Customer
	for _, c := range m.customers {
		all = append(all, c)
	}
	return all, nil
}

func (m *memEntities) GetCustomer(ctx context.Context, partitionKey, rowKey string) (*model.Customer, error) {
	c, ok := m.customers[entityKey(partitionKey, rowKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (m *memEntities) InsertCustomer(ctx context.Context, customer *model.Customer) error {
	customer.PartitionKey = customer.Province
	if customer.PartitionKey == "" {
		customer.PartitionKey = store.DefaultCustomerPartition
	}
	customer.RowKey = uuid.NewString()
	m.customers[entityKey(customer.PartitionKey, customer.RowKey)] = *customer
	return nil
}

func (m *memEntities) UpdateCustomer(ctx context.Context, customer *model.Customer) error {
	m.customers[entityKey(customer.PartitionKey, customer.RowKey)] = *customer
	return nil
}

func (m *memEntities) DeleteCustomer(ctx context.Context, partitionKey, rowKey string) error {
	delete(m.customers, entityKey(partitionKey, rowKey))
	return nil
}

func (m *memEntities) ListProducts(ctx context.Context) ([]model.Product, error) {
	if m.failScan != nil {
		return nil, m.failScan
	}
	var all []model.Product
	for _, p := range m.products {
		all = append(all, p)
	}
	return all, nil
}

func (m *memEntities) GetProduct(ctx context.Context, partitionKey, rowKey string) (*model.Product, error) {
	p, ok := m.products[entityKey(partitionKey, rowKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m *memEntities) InsertProduct(ctx context.Context, product *model.Product) error {
	product.PartitionKey = product.Category
	if product.PartitionKey == "" {
		product.PartitionKey = store.DefaultProductPartition
	}
	product.RowKey = uuid.NewString()
	m.products[entityKey(product.PartitionKey, product.RowKey)] = *product
	return nil
}

func (m *memEntities) UpdateProduct(ctx context.Context, product *model.Product) error {
	m.products[entityKey(product.PartitionKey, product.RowKey)] = *product
	return nil
}

func (m *memEntities) DeleteProduct(ctx context.Context, partitionKey, rowKey string) error {
	delete(m.products, entityKey(partitionKey, rowKey))
	return nil
}

func (m *memEntities) ListOrders(ctx context.Context) ([]model.Order, error) {
	if m.failScan != nil {
		return nil, m.failScan
	}
	var all []model.Order
	for _, o := range m.orders {
		all = append(all, o)
	}
	return all, nil
}

func (m *memEntities) GetOrder(ctx context.Context, partitionKey, rowKey string) (*model.Order, error) {
	o, ok := m.orders[entityKey(partitionKey, rowKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (m *memEntities) InsertOrder(ctx context.Context, order *model.Order) error {
	order.PartitionKey = order.OrderDate.UTC().Format("2006-01")
	order.RowKey = uuid.NewString()
	m.orders[entityKey(order.PartitionKey, order.RowKey)] = *order
	return nil
}

func (m *memEntities) UpdateOrder(ctx context.Context, order *model.Order) error {
	m.orders[entityKey(order.PartitionKey, order.RowKey)] = *order
	return nil
}

func (m *memEntities) DeleteOrder(ctx context.Context, partitionKey, rowKey string) error {
	delete(m.orders, entityKey(partitionKey, rowKey))
	return nil
}

// memPhotos is an in-memory photo bucket keyed by object name.
type memPhotos struct {
	objects   map[string]bool
	uploadErr error
}

func newMemPhotos() *memPhotos {
	return &memPhotos{objects: make(map[string]bool)}
}

func (m *memPhotos) Upload(ctx context.Context, fileName string, body io.Reader) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	key := uuid.NewString() + "_" + fileName
	m.objects[key] = true
	return "https://photos.test/" + url.PathEscape(key), nil
}

func (m *memPhotos) Delete(ctx context.Context, photoURL string) (bool, error) {
	key := m.keyFromURL(photoURL)
	if key == "" || !m.objects[key] {
		return false, nil
	}
	delete(m.objects, key)
	return true, nil
}

func (m *memPhotos) Exists(ctx context.Context, photoURL string) (bool, error) {
	return m.objects[m.keyFromURL(photoURL)], nil
}

func (m *memPhotos) keyFromURL(photoURL string) string {
	u, err := url.Parse(photoURL)
	if err != nil {
		return ""
	}
	key, err := url.PathUnescape(path.Base(u.Path))
	if err != nil {
		return ""
	}
	return key
}

// memAudit records appended events and replays them for peeks.
type memAudit struct {
	events    []model.AuditEvent
	appendErr error
}

func (m *memAudit) Append(ctx context.Context, message any) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	if event, ok := message.(model.AuditEvent); ok {
		m.events = append(m.events, event)
	}
	return nil
}

func (m *memAudit) PeekRecent(ctx context.Context, max int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	for i, event := range m.events {
		if i == max {
			break
		}
		entries = append(entries, model.AuditLog{
			MessageID:     uuid.NewString(),
			InsertionTime: event.Timestamp,
			MessageText:   event.Action,
		})
	}
	return entries, nil
}

// lastAction returns the action of the most recent audit event.
func (m *memAudit) lastAction() string {
	if len(m.events) == 0 {
		return ""
	}
	return m.events[len(m.events)-1].Action
}

var errStorageDown = errors.New("storage unavailable")
