package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestValidFeedbackType(t *testing.T) {
	for _, ft := range []string{
		FeedbackTypeGeneral, FeedbackTypeNPS, FeedbackTypeFeatureSpecific,
		FeedbackTypeBugReport, FeedbackTypeImprovement,
	} {
		assert.True(t, ValidFeedbackType(ft), ft)
	}

	assert.False(t, ValidFeedbackType("complaint"))
	assert.False(t, ValidFeedbackType(""))
	assert.False(t, ValidFeedbackType("General"))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusNew, StatusInReview, StatusPlanned, StatusResolved, StatusDismissed} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestFeedbackRecordValidate(t *testing.T) {
	record := &FeedbackRecord{
		FeedbackType: FeedbackTypeGeneral,
		Message:      "hello",
	}
	require.NoError(t, record.Validate())

	record.Message = "   "
	assert.Error(t, record.Validate())

	record.Message = "hello"
	record.FeedbackType = "nope"
	assert.Error(t, record.Validate())

	record.FeedbackType = FeedbackTypeGeneral
	record.Rating = intPtr(0)
	assert.Error(t, record.Validate())

	record.Rating = intPtr(5)
	record.SentimentScore = floatPtr(1.5)
	assert.Error(t, record.Validate())

	record.SentimentScore = floatPtr(-1.0)
	assert.NoError(t, record.Validate())
}

func TestNPSRecordValidate(t *testing.T) {
	record := &NPSRecord{UserID: 1, Score: 10}
	require.NoError(t, record.Validate())

	record.Score = 11
	assert.Error(t, record.Validate())

	record.Score = 5
	record.UserID = 0
	assert.Error(t, record.Validate())
}

func TestUserValidate(t *testing.T) {
	user := &User{Email: "maya@example.com", APIToken: "tok"}
	require.NoError(t, user.Validate())

	assert.Error(t, (&User{APIToken: "tok"}).Validate())
	assert.Error(t, (&User{Email: "maya@example.com"}).Validate())
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = StringArray{"bug", "ui"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{bug,ui}", v)
}

func TestStringArrayScan(t *testing.T) {
	var s StringArray
	require.NoError(t, s.Scan("{bug,ui}"))
	assert.Equal(t, StringArray{"bug", "ui"}, s)

	require.NoError(t, s.Scan("{}"))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)

	require.NoError(t, s.Scan([]byte("{feature}")))
	assert.Equal(t, StringArray{"feature"}, s)

	assert.Error(t, s.Scan(42))
}
