package model

// CreditLevel 信誉等级，按 MinScore 升序排列
type CreditLevel struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MinScore    int    `json:"min_score"`
}

var CreditLevels = []CreditLevel{
	{Name: "场务级", Description: "负责搬砖和买盒饭，能把东西凑齐就是胜利", MinScore: 0},
	{Name: "群演级", Description: "随大流组织，别人怎么干我就怎么干，重在参与", MinScore: 10},
	{Name: "剪辑级", Description: "擅长化腐朽为神奇，能把凌乱的过程修饰成体面的结果", MinScore: 30},
	{Name: "导演级", Description: "拥有清晰的剧本（方案），能调动各部门演员（同事）各就其位", MinScore: 60},
	{Name: "制片级", Description: "算得清成本，控得住风险，在预算范围内玩出最高性价比", MinScore: 100},
	{Name: "奥斯卡级", Description: "无论剧本多烂（资源多差），都能组织出一场载入史册的经典大片", MinScore: 150},
}

// LevelOf 返回满足 MinScore <= score 的最高等级，低于所有门槛时为最低等级
func LevelOf(score int) CreditLevel {
	for i := len(CreditLevels) - 1; i >= 0; i-- {
		if score >= CreditLevels[i].MinScore {
			return CreditLevels[i]
		}
	}
	return CreditLevels[0]
}
