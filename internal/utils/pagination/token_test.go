package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	date := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeDateBasedToken(date)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, date.Equal(decoded), "Date should match after decode")

	// Zero time round-trips too
	zeroToken := EncodeDateBasedToken(time.Time{})
	decodedZero, err := DecodeDateBasedToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero(), "Zero date should match after decode")
}

func TestDecodeDateBasedTokenError(t *testing.T) {
	_, err := DecodeDateBasedToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	notADate := "bm90YWRhdGU=" // base64 of "notadate"
	_, err = DecodeDateBasedToken(notADate)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse")
}
