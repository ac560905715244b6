package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAccountOperation(t *testing.T) {
	counter := AccountOperationsTotal.WithLabelValues(OperationLogin, "ACCOUNT_SUSPENDED")
	before := testutil.ToFloat64(counter)

	ObserveAccountOperation(OperationLogin, "ACCOUNT_SUSPENDED", time.Now())
	ObserveAccountOperation(OperationLogin, "ACCOUNT_SUSPENDED", time.Now())

	assert.InDelta(t, before+2, testutil.ToFloat64(counter), 0.0001)
	assert.Positive(t, testutil.CollectAndCount(AccountOperationDuration))
}
