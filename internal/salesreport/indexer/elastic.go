package indexer

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

const mapping = `{
  "mappings": {
    "properties": {
      "order_id":       {"type": "keyword"},
      "order_code":     {"type": "keyword"},
      "student_id":     {"type": "keyword"},
      "student_name":   {"type": "text"},
      "email":          {"type": "keyword"},
      "student_number": {"type": "keyword"},
      "level":          {"type": "keyword"},
      "department":     {"type": "keyword"},
      "gender":         {"type": "keyword"},
      "total_amount":   {"type": "scaled_float", "scaling_factor": 100},
      "claimed_at":     {"type": "date"},
      "month":          {"type": "integer"},
      "year":           {"type": "integer"},
      "items": {
        "type": "nested",
        "properties": {
          "level":        {"type": "keyword"},
          "product_type": {"type": "keyword"},
          "size":         {"type": "keyword"},
          "unit_price":   {"type": "scaled_float", "scaling_factor": 100},
          "quantity":     {"type": "integer"},
          "subtotal":     {"type": "scaled_float", "scaling_factor": 100}
        }
      }
    }
  }
}`

type SearchClient interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
}

type ElasticIndexer struct {
	client SearchClient
	index  string
}

func NewElasticIndexer(client SearchClient, index string) *ElasticIndexer {
	return &ElasticIndexer{client: client, index: index}
}

// EnsureIndex creates the sales index if it is missing.
func (i *ElasticIndexer) EnsureIndex(ctx context.Context) error {
	return i.client.CreateIndex(ctx, i.index, mapping)
}

func (i *ElasticIndexer) IndexReport(ctx context.Context, report *model.SalesReport) error {
	return i.client.Index(ctx, i.index, report.ID, report)
}
