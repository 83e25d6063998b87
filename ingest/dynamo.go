package ingest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoClient is the subset of the DynamoDB API used by DynamoSource.
// *dynamodb.Client satisfies it.
type DynamoClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoSource scans a DynamoDB table and turns each item into a record
// whose fields follow the configured attribute order.
type DynamoSource struct {
	client     DynamoClient
	table      string
	attributes []string
	pageLimit  int32
}

// NewDynamoSource creates a source over table. attributes fixes the field
// order of each record; missing attributes become empty fields.
func NewDynamoSource(client DynamoClient, table string, attributes []string) *DynamoSource {
	return &DynamoSource{
		client:     client,
		table:      table,
		attributes: attributes,
	}
}

// WithPageLimit caps the number of items returned per Scan page.
func (s *DynamoSource) WithPageLimit(n int32) *DynamoSource {
	s.pageLimit = n
	return s
}

// Name returns the table name.
func (s *DynamoSource) Name() string { return s.table }

// Scan pages through the table. Record.Line is the 1-based item position in
// scan order.
func (s *DynamoSource) Scan(ctx context.Context, fn func(Record) error) error {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	}
	if s.pageLimit > 0 {
		input.Limit = aws.Int32(s.pageLimit)
	}
	if len(s.attributes) > 0 {
		input.ProjectionExpression, input.ExpressionAttributeNames = projection(s.attributes)
	}

	line := 0
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("ingest: scan %s: %w", s.table, err)
		}
		for _, item := range page.Items {
			line++
			rec := Record{
				Source: s.table,
				Line:   line,
				Fields: make([]string, len(s.attributes)),
			}
			for i, attr := range s.attributes {
				rec.Fields[i] = attributeString(item[attr])
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// projection builds "#a0, #a1, ..." with placeholder names so reserved
// words can be used as attribute names.
func projection(attributes []string) (*string, map[string]string) {
	names := make(map[string]string, len(attributes))
	expr := ""
	for i, attr := range attributes {
		ph := "#a" + strconv.Itoa(i)
		names[ph] = attr
		if i > 0 {
			expr += ", "
		}
		expr += ph
	}
	return aws.String(expr), names
}

func attributeString(v types.AttributeValue) string {
	switch v := v.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	case *types.AttributeValueMemberBOOL:
		return strconv.FormatBool(v.Value)
	case *types.AttributeValueMemberB:
		return string(v.Value)
	default:
		return ""
	}
}
