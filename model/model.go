// Package model defines the entities stored by the retail admin system.
package model

import "time"

// Key is the composite address of an entity: a coarse grouping partition
// and a generated row identifier. The row key never changes after insert.
type Key struct {
	PartitionKey string `json:"partitionKey"`
	RowKey       string `json:"rowKey"`
}

// Customer is a retail customer record.
type Customer struct {
	PartitionKey     string `dynamodbav:"partition_key" json:"PartitionKey"`
	RowKey           string `dynamodbav:"row_key" json:"RowKey"`
	Name             string `dynamodbav:"name" json:"Name"`
	Surname          string `dynamodbav:"surname" json:"Surname"`
	Email            string `dynamodbav:"email" json:"Email"`
	PhoneNumber      string `dynamodbav:"phone_number" json:"PhoneNumber"`
	StreetAddress    string `dynamodbav:"street_address" json:"StreetAddress"`
	City             string `dynamodbav:"city" json:"City"`
	Province         string `dynamodbav:"province" json:"Province"`
	PostalCode       string `dynamodbav:"postal_code" json:"PostalCode"`
	Country          string `dynamodbav:"country" json:"Country"`
	CustomerPhotoURL string `dynamodbav:"customer_photo_url" json:"CustomerPhotoUrl"`
}

// Key returns the composite key of the customer.
func (c Customer) Key() Key {
	return Key{PartitionKey: c.PartitionKey, RowKey: c.RowKey}
}

// Product is a catalog item.
type Product struct {
	PartitionKey    string  `dynamodbav:"partition_key" json:"PartitionKey"`
	RowKey          string  `dynamodbav:"row_key" json:"RowKey"`
	ProductName     string  `dynamodbav:"product_name" json:"ProductName"`
	Description     string  `dynamodbav:"description" json:"Description"`
	Price           float64 `dynamodbav:"price" json:"Price"`
	Category        string  `dynamodbav:"category" json:"Category"`
	ProductPhotoURL string  `dynamodbav:"product_photo_url" json:"ProductPhotoUrl"`
}

// Key returns the composite key of the product.
func (p Product) Key() Key {
	return Key{PartitionKey: p.PartitionKey, RowKey: p.RowKey}
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ValidStatus reports whether s is one of the defined order states.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order references one customer and one product by their composite keys.
// The references are weak: deleting a customer or product does not touch
// existing orders.
type Order struct {
	PartitionKey         string      `dynamodbav:"partition_key" json:"PartitionKey"`
	RowKey               string      `dynamodbav:"row_key" json:"RowKey"`
	CustomerPartitionKey string      `dynamodbav:"customer_partition_key" json:"CustomerPartitionKey"`
	CustomerRowKey       string      `dynamodbav:"customer_row_key" json:"CustomerRowKey"`
	ProductPartitionKey  string      `dynamodbav:"product_partition_key" json:"ProductPartitionKey"`
	ProductRowKey        string      `dynamodbav:"product_row_key" json:"ProductRowKey"`
	Quantity             int         `dynamodbav:"quantity" json:"Quantity"`
	OrderDate            time.Time   `dynamodbav:"order_date,unixtime" json:"OrderDate"`
	TotalAmount          float64     `dynamodbav:"total_amount" json:"TotalAmount"`
	OrderStatus          OrderStatus `dynamodbav:"order_status" json:"OrderStatus"`
}

// Key returns the composite key of the order.
func (o Order) Key() Key {
	return Key{PartitionKey: o.PartitionKey, RowKey: o.RowKey}
}

// AuditEvent is the fixed schema for audit log payloads. Every mutating
// operation appends one of these to the audit queue.
type AuditEvent struct {
	Action     string         `json:"Action"`
	EntityType string         `json:"EntityType"`
	Timestamp  time.Time      `json:"Timestamp"`
	Details    map[string]any `json:"Details,omitempty"`
}

// AuditLog is an audit entry as read back from the queue.
type AuditLog struct {
	MessageID     string    `json:"MessageId"`
	InsertionTime time.Time `json:"InsertionTime"`
	MessageText   string    `json:"MessageText"`
}
