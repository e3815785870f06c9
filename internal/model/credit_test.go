package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf(t *testing.T) {
	cases := map[int]string{
		-5:  "场务级",
		0:   "场务级",
		9:   "场务级",
		10:  "群演级",
		59:  "剪辑级",
		60:  "导演级",
		100: "制片级",
		149: "制片级",
		150: "奥斯卡级",
		999: "奥斯卡级",
	}
	for score, want := range cases {
		assert.Equal(t, want, LevelOf(score).Name, "score %d", score)
	}
}

func TestCreditLevelsAscending(t *testing.T) {
	for i := 1; i < len(CreditLevels); i++ {
		assert.Less(t, CreditLevels[i-1].MinScore, CreditLevels[i].MinScore)
	}
}
