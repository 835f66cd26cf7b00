// Package dynamo loads annotation tables stored in Amazon DynamoDB.
//
// Table schema:
//   - id (string): annotation id, required
//   - name (string): display name
//   - description (string)
//   - symbols (string set): optional symbol ids carrying the annotation
//
// The whole table is scanned before anything is applied, so a failed scan
// leaves the Dataset unchanged. Symbol ids that are not yet registered are
// added along with the annotations that list them.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/enriched/dataset"
	"github.com/hupe1980/enriched/loader"
)

// ScanClient is the subset of the DynamoDB API the loader needs.
type ScanClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Attribute names read from every item.
const (
	AttrID          = "id"
	AttrName        = "name"
	AttrDescription = "description"
	AttrSymbols     = "symbols"
)

// Scan reads every annotation item of table.
func Scan(ctx context.Context, client ScanClient, table string) ([]loader.AnnotationRecord, error) {
	p := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})

	var recs []loader.AnnotationRecord
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		for _, item := range page.Items {
			rec, err := decode(item)
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", table, err)
			}
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// Loader returns a function that scans table on every call. It matches
// enriched.AnnotationLoader.
func Loader(client ScanClient, table string) func(ctx context.Context) ([]loader.AnnotationRecord, error) {
	return func(ctx context.Context) ([]loader.AnnotationRecord, error) {
		return Scan(ctx, client, table)
	}
}

// NewClient creates a DynamoDB client from the default AWS credential chain.
// Empty region or endpoint keep the environment's settings.
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// LoadAnnotations scans table and adds its annotations to ds.
func LoadAnnotations(ctx context.Context, client ScanClient, table string, ds *dataset.Dataset) (loader.Summary, error) {
	recs, err := Scan(ctx, client, table)
	if err != nil {
		return loader.Summary{}, err
	}
	s, err := loader.ApplyAnnotations(ctx, ds, recs)
	s.Lines = len(recs)
	return s, err
}

func decode(item map[string]types.AttributeValue) (loader.AnnotationRecord, error) {
	id := stringAttr(item, AttrID)
	if id == "" {
		return loader.AnnotationRecord{}, fmt.Errorf("%w: item without %q attribute", loader.ErrMalformed, AttrID)
	}

	rec := loader.AnnotationRecord{
		ID:          id,
		Name:        stringAttr(item, AttrName),
		Description: stringAttr(item, AttrDescription),
	}
	switch v := item[AttrSymbols].(type) {
	case *types.AttributeValueMemberSS:
		rec.Symbols = v.Value
	case *types.AttributeValueMemberL:
		for _, e := range v.Value {
			if s, ok := e.(*types.AttributeValueMemberS); ok {
				rec.Symbols = append(rec.Symbols, s.Value)
			}
		}
	}
	return rec, nil
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
