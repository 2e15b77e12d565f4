// Package observability provides CloudWatch metrics and X-Ray tracing
// helpers.
package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes application counters to CloudWatch. A nil *Metrics is a
// valid no-op instance, so call sites never need to guard on the feature
// flag.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a metrics publisher for the given namespace.
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// Count publishes a counter datum. Publish failures are dropped: metrics
// must never fail an operation.
func (m *Metrics) Count(ctx context.Context, name string, value float64) {
	if m == nil || m.client == nil {
		return
	}

	datum := types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       types.StandardUnitCount,
		Timestamp:  aws.Time(time.Now()),
	}

	_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: []types.MetricDatum{datum},
	})
}

// Increment publishes a counter datum of 1.
func (m *Metrics) Increment(ctx context.Context, name string) {
	m.Count(ctx, name, 1)
}

// Metric names recorded by the catalog service and explorer controller.
const (
	MetricBookCreated          = "BookCreated"
	MetricBookReplaced         = "BookReplaced"
	MetricBookDeleted          = "BookDeleted"
	MetricDeleteRolledBack     = "DeleteRolledBack"
	MetricReconciliationFailed = "ReconciliationFailed"
	MetricCatalogCacheHit      = "CatalogCacheHit"
	MetricCatalogCacheMiss     = "CatalogCacheMiss"
)
