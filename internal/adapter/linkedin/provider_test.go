package linkedin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvider_ReturnsNoData(t *testing.T) {
	data, err := NewProvider().Enrich(context.Background(), "https://www.linkedin.com/company/acme")
	assert.NoError(t, err)
	assert.Nil(t, data)
}
