package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCustomerCreated(t *testing.T) {
	before := testutil.ToFloat64(Business.CustomersCreatedTotal)
	RecordCustomerCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(Business.CustomersCreatedTotal))
}

func TestRecordCustomerRejected(t *testing.T) {
	Business.CustomerRejectionTotal.Reset()
	RecordCustomerRejected("duplicate")
	RecordCustomerRejected("duplicate")
	RecordCustomerRejected("validation")

	assert.Equal(t, float64(2), testutil.ToFloat64(Business.CustomerRejectionTotal.WithLabelValues("duplicate")))
	assert.Equal(t, float64(1), testutil.ToFloat64(Business.CustomerRejectionTotal.WithLabelValues("validation")))
}

func TestSetCustomersStored(t *testing.T) {
	SetCustomersStored(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(Business.CustomersStored))
}

func TestRecordStoreOperation(t *testing.T) {
	Store.OperationDuration.Reset()
	RecordStoreOperation("load", "success", 10*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(Store.OperationDuration))
}

func TestSetStoreAuditIssues(t *testing.T) {
	SetStoreAuditIssues("duplicate_email", 3)
	SetStoreAuditIssues("duplicate_email", 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(Business.StoreAuditIssues.WithLabelValues("duplicate_email")))
}
