package models

// AlcoholType is the beverage category of a record. The empty value means
// the user did not pick one.
type AlcoholType string

// Supported beverage categories.
const (
	AlcoholNone     AlcoholType = ""
	AlcoholNihonshu AlcoholType = "nihonshu"
	AlcoholBeer     AlcoholType = "beer"
	AlcoholWine     AlcoholType = "wine"
	AlcoholShochu   AlcoholType = "shochu"
	AlcoholWhiskey  AlcoholType = "whiskey"
)

// Valid reports whether t is one of the supported categories or unset.
func (t AlcoholType) Valid() bool {
	switch t {
	case AlcoholNone, AlcoholNihonshu, AlcoholBeer, AlcoholWine, AlcoholShochu, AlcoholWhiskey:
		return true
	}
	return false
}

// AlcoholTypeConfig describes one beverage category: its display label and
// the flavor tags suggested when tagging a record of that category.
type AlcoholTypeConfig struct {
	Key   AlcoholType
	Label string
	Tags  []string
}

// AlcoholTypes is the fixed catalog of beverage categories, in display order.
var AlcoholTypes = []AlcoholTypeConfig{
	{
		Key:   AlcoholNihonshu,
		Label: "日本酒",
		Tags: []string{
			"甘口", "辛口", "芳醇", "淡麗",
			"純米", "純米吟醸", "特別純米", "純米大吟醸",
			"大吟醸", "吟醸", "特別本醸造", "本醸造",
			"熱燗", "冷酒", "にごり", "スパークリング", "生酒", "原酒",
		},
	},
	{
		Key:   AlcoholBeer,
		Label: "ビール",
		Tags: []string{
			"クラフトビール", "香り", "苦味", "キレ", "コク",
			"IPA", "ラガー", "エール", "スタウト",
			"ピルスナー", "ヴァイツェン", "フルーティー",
		},
	},
	{
		Key:   AlcoholWine,
		Label: "ワイン",
		Tags: []string{
			"赤", "白", "オレンジ", "ロゼ",
			"スパークリング", "酸味", "渋味", "果実味", "香り", "スイーツ",
			"辛口", "甘口", "フルボディ", "ライトボディ",
		},
	},
	{
		Key:   AlcoholShochu,
		Label: "焼酎",
		Tags: []string{
			"芋", "麦", "米", "黒糖", "泡盛",
			"ロック", "水割り", "お湯割り", "ソーダ割り", "ストレート",
		},
	},
	{
		Key:   AlcoholWhiskey,
		Label: "ウイスキー",
		Tags: []string{
			"シングルモルト", "ブレンデッド", "バーボン",
			"スモーキー", "ピーティー", "フルーティー",
			"ハイボール", "ストレート", "ロック", "水割り",
		},
	},
}

// AlcoholTypeConfigFor returns the catalog entry for key, or nil when key is
// unset or unknown.
func AlcoholTypeConfigFor(key AlcoholType) *AlcoholTypeConfig {
	for i := range AlcoholTypes {
		if AlcoholTypes[i].Key == key {
			return &AlcoholTypes[i]
		}
	}
	return nil
}

// Label returns the display label for t, falling back to the raw value for
// unknown keys and to "未分類" for the empty value.
func (t AlcoholType) Label() string {
	if t == AlcoholNone {
		return "未分類"
	}
	if cfg := AlcoholTypeConfigFor(t); cfg != nil {
		return cfg.Label
	}
	return string(t)
}
