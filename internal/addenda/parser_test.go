package addenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_RelativeOffset(t *testing.T) {
	res := Parse("이 법은 공포 후 6개월이 경과한 날부터 시행한다.", date(2024, 1, 1))

	require.NotNil(t, res.EffectiveDate)
	assert.Equal(t, date(2024, 7, 1), *res.EffectiveDate)
	assert.False(t, res.HasTransitional)
	assert.Empty(t, res.Conditions)
}

func TestParse_RelativeYears(t *testing.T) {
	res := Parse("이 법은 공포 후 1년이 경과한 날부터 시행한다.", date(2024, 3, 15))

	require.NotNil(t, res.EffectiveDate)
	assert.Equal(t, date(2025, 3, 15), *res.EffectiveDate)
}

func TestParse_AbsoluteDateWinsOverPromulgation(t *testing.T) {
	res := Parse("이 법은 2025년 7월 1일부터 시행한다.", date(2023, 2, 2))

	require.NotNil(t, res.EffectiveDate)
	assert.Equal(t, date(2025, 7, 1), *res.EffectiveDate)
}

func TestParse_AbsoluteBeatsRelative(t *testing.T) {
	// First match wins in resolution order: absolute before relative.
	text := "이 법은 2025년 1월 1일부터 시행한다. 다만 제5조는 공포 후 3개월이 경과한 날부터 시행한다."
	res := Parse(text, date(2024, 6, 1))

	require.NotNil(t, res.EffectiveDate)
	assert.Equal(t, date(2025, 1, 1), *res.EffectiveDate)
}

func TestParse_PromulgationDay(t *testing.T) {
	res := Parse("이 법은 공포한 날부터 시행한다.", date(2024, 5, 20))

	require.NotNil(t, res.EffectiveDate)
	assert.Equal(t, date(2024, 5, 20), *res.EffectiveDate)
}

func TestParse_DelegatedDate(t *testing.T) {
	res := Parse("이 법은 대통령령으로 정하는 날부터 시행한다.", date(2024, 1, 1))

	assert.Nil(t, res.EffectiveDate)
	require.Len(t, res.Conditions, 1)
	assert.Contains(t, res.Conditions[0], "대통령령")
}

func TestParse_TransitionalProvision(t *testing.T) {
	text := "이 법은 공포한 날부터 시행한다. 이 법 시행 당시 종전의 규정에 따라 체결된 계약은 종전 규정에 따른다."
	res := Parse(text, date(2024, 1, 1))

	assert.True(t, res.HasTransitional)
	require.NotNil(t, res.EffectiveDate)
}

func TestParse_Unresolvable(t *testing.T) {
	res := Parse("부칙 생략", date(2024, 1, 1))

	assert.Nil(t, res.EffectiveDate)
	assert.Empty(t, res.Conditions)
	assert.False(t, res.HasTransitional)
}
