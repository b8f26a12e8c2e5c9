package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorDocument_Classify(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	issued := now.AddDate(-1, 0, 0)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      VendorComplianceStatus
	}{
		{"expired yesterday", now.AddDate(0, 0, -1), VendorNonCompliant},
		{"expires this instant", now, VendorNonCompliant},
		{"expires tomorrow", now.AddDate(0, 0, 1), VendorExpiringSoon},
		{"expires in 29 days", now.AddDate(0, 0, 29), VendorExpiringSoon},
		{"expires in 31 days", now.AddDate(0, 0, 31), VendorCompliant},
		{"expires next year", now.AddDate(1, 0, 0), VendorCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &VendorDocument{IssuedAt: issued, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, doc.Classify(now))
		})
	}
}

func TestNewVendor(t *testing.T) {
	t.Run("new vendor without documents is non-compliant", func(t *testing.T) {
		vendor, err := NewVendor("Müller Patent Services", "DE123456789")
		require.NoError(t, err)
		assert.Equal(t, VendorNonCompliant, vendor.ComplianceStatus)
		assert.Empty(t, vendor.Documents)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewVendor("", "DE123456789")
		assert.Error(t, err)
	})
}

func TestVendor_AddDocument(t *testing.T) {
	now := time.Now()

	t.Run("valid document makes vendor compliant", func(t *testing.T) {
		vendor, _ := NewVendor("Müller Patent Services", "DE123456789")
		_, err := vendor.AddDocument("ISO cert", "docs/iso.pdf", now.AddDate(-1, 0, 0), now.AddDate(1, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, VendorCompliant, vendor.ComplianceStatus)
	})

	t.Run("worst document wins", func(t *testing.T) {
		vendor, _ := NewVendor("Müller Patent Services", "DE123456789")
		_, err := vendor.AddDocument("ISO cert", "docs/iso.pdf", now.AddDate(-1, 0, 0), now.AddDate(1, 0, 0))
		require.NoError(t, err)
		_, err = vendor.AddDocument("Tax clearance", "docs/tax.pdf", now.AddDate(-1, 0, 0), now.AddDate(0, 0, 10))
		require.NoError(t, err)
		assert.Equal(t, VendorExpiringSoon, vendor.ComplianceStatus)
	})

	t.Run("rejects expiry before issue date", func(t *testing.T) {
		vendor, _ := NewVendor("Müller Patent Services", "DE123456789")
		_, err := vendor.AddDocument("ISO cert", "docs/iso.pdf", now, now.AddDate(-1, 0, 0))
		assert.Error(t, err)
	})
}

func TestVendor_RefreshCompliance(t *testing.T) {
	now := time.Now()
	vendor, _ := NewVendor("Müller Patent Services", "DE123456789")
	_, err := vendor.AddDocument("ISO cert", "docs/iso.pdf", now.AddDate(-1, 0, 0), now.AddDate(0, 2, 0))
	require.NoError(t, err)
	require.Equal(t, VendorCompliant, vendor.ComplianceStatus)

	// same documents classified three months later
	vendor.RefreshCompliance(now.AddDate(0, 3, 0))
	assert.Equal(t, VendorNonCompliant, vendor.ComplianceStatus)
}

func TestVendorDocument_ExpiresWithin(t *testing.T) {
	now := time.Now()
	doc := &VendorDocument{ExpiresAt: now.AddDate(0, 0, 15)}

	assert.True(t, doc.ExpiresWithin(now, 30*24*time.Hour))
	assert.False(t, doc.ExpiresWithin(now, 10*24*time.Hour))

	expired := &VendorDocument{ExpiresAt: now.AddDate(0, 0, -1)}
	assert.False(t, expired.ExpiresWithin(now, 30*24*time.Hour), "already expired documents are not expiring")
}
