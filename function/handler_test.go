package function_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/abcretail/retail/fileshare"
	"github.com/abcretail/retail/function"
	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/service"
	"github.com/abcretail/retail/store"
)

// fakeBackend is an in-memory stand-in for the storage layer, keeping
// the store's key-assignment behavior so handler tests exercise the
// full request path.
type fakeBackend struct {
	customers map[string]model.Customer
	products  map[string]model.Product
	orders    map[string]model.Order
	photos    map[string]bool
	audits    []model.AuditEvent
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		customers: make(map[string]model.Customer),
		products:  make(map[string]model.Product),
		orders:    make(map[string]model.Order),
		photos:    make(map[string]bool),
	}
}

func compositeKey(partitionKey, rowKey string) string {
	return partitionKey + "|" + rowKey
}

func (b *fakeBackend) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var all []model.Customer
	for _, c := range b.customers {
		all = append(all, c)
	}
	return all, nil
}

func (b *fakeBackend) GetCustomer(ctx context.Context, partitionKey, rowKey string) (*model.Customer, error) {
	c, ok := b.customers[compositeKey(partitionKey, rowKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (b *fakeBackend) InsertCustomer(ctx context.Context, customer *model.Customer) error {
	customer.PartitionKey = customer.Province
	if customer.PartitionKey == "" {
		customer.PartitionKey = store.DefaultCustomerPartition
	}
	customer.RowKey = uuid.NewString()
	b.customers[compositeKey(customer.PartitionKey, customer.RowKey)] = *customer
	return nil
}

func (b *fakeBackend) UpdateCustomer(ctx context.Context, customer *model.Customer) error {
	b.customers[compositeKey(customer.PartitionKey, customer.RowKey)] = *customer
	return nil
}

func (b *fakeBackend) DeleteCustomer(ctx context.Context, partitionKey, rowKey string) error {
	delete(b.customers, compositeKey(partitionKey, rowKey))
	return nil
}

func (b *fakeBackend) ListProducts(ctx context.Context) ([]model.Product, error) {
	var all []model.Product
	for _, p := range b.products {
		all = append(all, p)
	}
	return all, nil
}

func (b *fakeBackend) GetProduct(ctx context.Context, partitionKey, rowKey string) (*model.Product, error) {
	p, ok := b.products[compositeKey(partitionKey, rowKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (b *fakeBackend) InsertProduct(ctx context.Context, product *model.Product) error {
	product.PartitionKey = product.Category
	if product.PartitionKey == "" {
		product.PartitionKey = store.DefaultProductPartition
	}
	product.RowKey = uuid.NewString()
	b.products[compositeKey(product.PartitionKey, product.RowKey)] = *product
	return nil
}

func (b *fakeBackend) UpdateProduct(ctx context.Context, product *model.Product) error {
	b.products[compositeKey(product.PartitionKey, product.RowKey)] = *product
	return nil
}

func (b *fakeBackend) DeleteProduct(ctx context.Context, partitionKey, rowKey string) error {
	delete(b.products, compositeKey(partitionKey, rowKey))
	return nil
}

func (b *fakeBackend) ListOrders(ctx context.Context) ([]model.Order, error) {
	var all []model.Order
	for _, o := range b.orders {
		all = append(all, o)
	}
	return all, nil
}

func (b *fakeBackend) GetOrder(ctx context.Context, partitionKey, rowKey string) (*model.Order, error) {
	o, ok := b.orders[compositeKey(partitionKey, rowKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (b *fakeBackend) InsertOrder(ctx context.Context, order *model.Order) error {
	order.PartitionKey = order.OrderDate.UTC().Format("2006-01")
	order.RowKey = uuid.NewString()
	b.orders[compositeKey(order.PartitionKey, order.RowKey)] = *order
	return nil
}

func (b *fakeBackend) UpdateOrder(ctx context.Context, order *model.Order) error {
	b.orders[compositeKey(order.PartitionKey, order.RowKey)] = *order
	return nil
}

func (b *fakeBackend) DeleteOrder(ctx context.Context, partitionKey, rowKey string) error {
	delete(b.orders, compositeKey(partitionKey, rowKey))
	return nil
}

func (b *fakeBackend) Upload(ctx context.Context, fileName string, body io.Reader) (string, error) {
	key := uuid.NewString() + "_" + fileName
	b.photos[key] = true
	return "https://photos.test/" + key, nil
}

func (b *fakeBackend) Delete(ctx context.Context, photoURL string) (bool, error) {
	return true, nil
}

func (b *fakeBackend) Exists(ctx context.Context, photoURL string) (bool, error) {
	return false, nil
}

func (b *fakeBackend) Append(ctx context.Context, message any) error {
	if event, ok := message.(model.AuditEvent); ok {
		b.audits = append(b.audits, event)
	}
	return nil
}

func (b *fakeBackend) PeekRecent(ctx context.Context, max int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	for i, event := range b.audits {
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

func newHandler(t *testing.T) (*function.Handler, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	share, err := fileshare.New(t.TempDir())
	if err != nil {
		t.Fatalf("fileshare.New: %v", err)
	}
	return function.NewHandler(
		service.NewCustomerService(backend, backend, backend, nil),
		service.NewProductService(backend, backend, backend, nil),
		service.NewOrderService(backend, backend, backend, backend, nil),
		service.NewAuditService(backend, nil),
		share,
		nil,
	), backend
}

// multipartRequest builds a base64-encoded multipart proxy request the
// way API Gateway delivers binary bodies.
func multipartRequest(t *testing.T, method, path string, fields map[string]string, fileName string, fileData []byte) events.APIGatewayProxyRequest {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %q: %v", name, err)
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return events.APIGatewayProxyRequest{
		HTTPMethod:      method,
		Path:            path,
		Headers:         map[string]string{"content-type": writer.FormDataContentType()},
		Body:            base64.StdEncoding.EncodeToString(buf.Bytes()),
		IsBase64Encoded: true,
	}
}

func jsonRequest(t *testing.T, method, path string, payload any) events.APIGatewayProxyRequest {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return events.APIGatewayProxyRequest{
		HTTPMethod: method,
		Path:       path,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func decodeBody(t *testing.T, resp events.APIGatewayProxyResponse, dst any) {
	t.Helper()
	if err := json.Unmarshal([]byte(resp.Body), dst); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body, err)
	}
}

func customerFields() map[string]string {
	return map[string]string{
		"Name":          "Thandi",
		"Surname":       "Ndlovu",
		"Email":         "thandi@gmail.com",
		"StreetAddress": "1 Long St",
		"City":          "Johannesburg",
		"Province":      "Gauteng",
	}
}

func TestCreateCustomer(t *testing.T) {
	handler, _ := newHandler(t)
	ctx := context.Background()

	resp, err := handler.Handle(ctx, multipartRequest(t, http.MethodPost, "/api/customers", customerFields(), "face.jpg", []byte("jpeg")))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["partitionKey"] != "Gauteng" || body["rowKey"] == "" {
		t.Errorf("unexpected key in response: %v", body)
	}

	getResp, err := handler.Handle(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/customers/" + body["partitionKey"] + "/" + body["rowKey"],
	})
	if err != nil {
		t.Fatalf("Handle get: %v", err)
	}
	var fetched model.Customer
	decodeBody(t, getResp, &fetched)
	if fetched.Email != "thandi@gmail.com" {
		t.Errorf("unexpected fetched customer: %+v", fetched)
	}
	if fetched.CustomerPhotoURL == "" {
		t.Error("expected a photo URL on the created customer")
	}
}

func TestCreateCustomer_MissingName(t *testing.T) {
	handler, _ := newHandler(t)

	fields := customerFields()
	delete(fields, "Name")
	resp, err := handler.Handle(context.Background(), multipartRequest(t, http.MethodPost, "/api/customers", fields, "", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, resp.Body)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "Name is required" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestUpdateCustomer_Partial(t *testing.T) {
	handler, _ := newHandler(t)
	ctx := context.Background()

	resp, err := handler.Handle(ctx, multipartRequest(t, http.MethodPost, "/api/customers", customerFields(), "", nil))
	if err != nil {
		t.Fatalf("Handle create: %v", err)
	}
	var created map[string]string
	decodeBody(t, resp, &created)

	path := "/api/customers/" + created["partitionKey"] + "/" + created["rowKey"]
	updateResp, err := handler.Handle(ctx, multipartRequest(t, http.MethodPut, path, map[string]string{"City": "Cape Town"}, "", nil))
	if err != nil {
		t.Fatalf("Handle update: %v", err)
	}
	if updateResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", updateResp.StatusCode, updateResp.Body)
	}

	getResp, err := handler.Handle(ctx, events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: path})
	if err != nil {
		t.Fatalf("Handle get: %v", err)
	}
	var fetched model.Customer
	decodeBody(t, getResp, &fetched)
	if fetched.City != "Cape Town" {
		t.Errorf("expected updated city, got %q", fetched.City)
	}
	if fetched.Name != "Thandi" || fetched.Email != "thandi@gmail.com" {
		t.Errorf("partial update touched other fields: %+v", fetched)
	}
}

func TestDeleteCustomer_Absent(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodDelete,
		Path:       "/api/customers/Gauteng/missing",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", resp.StatusCode, resp.Body)
	}
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	handler, _ := newHandler(t)
	ctx := context.Background()

	fields := map[string]string{"ProductName": "Widget", "Price": "9.99", "Category": "Tools"}
	resp, err := handler.Handle(ctx, multipartRequest(t, http.MethodPost, "/api/products", fields, "", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	var created map[string]string
	decodeBody(t, resp, &created)
	if created["partitionKey"] != "Tools" || created["rowKey"] == "" {
		t.Errorf("unexpected key in response: %v", created)
	}

	dupResp, err := handler.Handle(ctx, multipartRequest(t, http.MethodPost, "/api/products",
		map[string]string{"ProductName": "Widget", "Price": "5"}, "", nil))
	if err != nil {
		t.Fatalf("Handle duplicate: %v", err)
	}
	if dupResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", dupResp.StatusCode, dupResp.Body)
	}
	var body map[string]string
	decodeBody(t, dupResp, &body)
	if body["error"] != "Product name already exists" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), multipartRequest(t, http.MethodPost, "/api/products",
		map[string]string{"ProductName": "Widget", "Price": "cheap"}, "", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, resp.Body)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "Invalid price" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestCreateOrder(t *testing.T) {
	handler, backend := newHandler(t)
	ctx := context.Background()

	customer := model.Customer{Name: "Thandi", Province: "Gauteng"}
	if err := backend.InsertCustomer(ctx, &customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product := model.Product{ProductName: "Widget", Price: 10.00, Category: "Tools"}
	if err := backend.InsertProduct(ctx, &product); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	resp, err := handler.Handle(ctx, jsonRequest(t, http.MethodPost, "/api/orders", map[string]any{
		"CustomerPartitionKey": customer.PartitionKey,
		"CustomerRowKey":       customer.RowKey,
		"ProductPartitionKey":  product.PartitionKey,
		"ProductRowKey":        product.RowKey,
		"Quantity":             3,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}

	var created map[string]string
	decodeBody(t, resp, &created)
	stored, err := backend.GetOrder(ctx, created["partitionKey"], created["rowKey"])
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if stored.TotalAmount != 30.00 {
		t.Errorf("expected total 30.00, got %v", stored.TotalAmount)
	}
	if stored.OrderStatus != model.StatusPending {
		t.Errorf("expected status Pending, got %q", stored.OrderStatus)
	}
}

func TestCreateOrder_BadQuantity(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), jsonRequest(t, http.MethodPost, "/api/orders", map[string]any{
		"CustomerPartitionKey": "Gauteng",
		"CustomerRowKey":       "c1",
		"ProductPartitionKey":  "Tools",
		"ProductRowKey":        "p1",
		"Quantity":             0,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, resp.Body)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "Quantity must be greater than zero" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestQueueRoutes(t *testing.T) {
	handler, _ := newHandler(t)
	ctx := context.Background()

	postResp, err := handler.Handle(ctx, jsonRequest(t, http.MethodPost, "/api/queue/auditlog", map[string]any{
		"Action":     "Manual Entry",
		"EntityType": "Order",
		"Details":    map[string]any{"note": "checked by hand"},
	}))
	if err != nil {
		t.Fatalf("Handle post: %v", err)
	}
	if postResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", postResp.StatusCode, postResp.Body)
	}

	getResp, err := handler.Handle(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/queue/messages",
	})
	if err != nil {
		t.Fatalf("Handle get: %v", err)
	}
	var entries []model.AuditLog
	decodeBody(t, getResp, &entries)
	if len(entries) != 1 || entries[0].MessageText != "Manual Entry" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestFileUpload(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), multipartRequest(t, http.MethodPost, "/api/fileshare/upload",
		nil, "contract.pdf", []byte("pdf bytes")))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["fileName"] != "contract.pdf" {
		t.Errorf("unexpected response: %v", body)
	}
}

func TestFileUpload_NoFile(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), multipartRequest(t, http.MethodPost, "/api/fileshare/upload",
		map[string]string{"note": "nothing attached"}, "", nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", resp.StatusCode, resp.Body)
	}
}

func TestUnknownRoute(t *testing.T) {
	handler, _ := newHandler(t)

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/warehouses",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", resp.StatusCode, resp.Body)
	}
}
