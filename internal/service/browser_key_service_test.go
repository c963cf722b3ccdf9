package service_test

import (
	"testing"
	"time"

	"lawpro-be/internal/pkg/serverutils"
	"lawpro-be/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserKeyService_Issue(t *testing.T) {
	svc := service.NewBrowserKeyService("secret", time.Hour)

	first, err := svc.Issue("")
	require.NoError(t, err)
	assert.NotEmpty(t, first.BrowserKey)
	assert.WithinDuration(t, time.Now().Add(time.Hour), first.ExpiresAt, time.Minute)

	key, err := serverutils.ParseBrowserKey(first.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, first.BrowserKey, key)

	renewed, err := svc.Issue(first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.BrowserKey, renewed.BrowserKey)

	other, err := service.NewBrowserKeyService("other-secret", time.Hour).Issue(first.Token)
	require.NoError(t, err)
	assert.NotEqual(t, first.BrowserKey, other.BrowserKey)
}
