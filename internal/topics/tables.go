package topics

import "strings"

type synonymSet struct {
	canonical string
	variants  []string
}

// Earlier sets win when a variant is listed twice ("통기타").
var synonymSets = []synonymSet{
	{"kpop", []string{"k-pop", "케이팝", "k pop", "korean pop"}},
	{"lofi", []string{"lo-fi", "로파이", "lo fi", "lofi hip hop"}},
	{"hiphop", []string{"hip-hop", "힙합", "hip hop", "랩"}},
	{"rnb", []string{"r&b", "알앤비", "rhythm and blues", "알엔비"}},
	{"edm", []string{"electronic", "일렉트로닉", "electronic dance", "electronica"}},
	{"jazz", []string{"재즈", "jaz"}},
	{"rock", []string{"록", "락"}},
	{"pop", []string{"팝", "팝송"}},
	{"classical", []string{"클래식", "클래시컬", "클랙식"}},
	{"indie", []string{"인디", "인디음악"}},
	{"acoustic", []string{"어쿠스틱", "통기타"}},
	{"ballad", []string{"발라드", "발라드곡"}},
	{"piano", []string{"피아노"}},
	{"guitar", []string{"기타", "통기타", "일렉기타"}},
	{"asmr", []string{"에이에스엠알"}},
	{"vlog", []string{"브이로그", "일상", "daily"}},
	{"gaming", []string{"게임", "겜", "플레이"}},
	{"tutorial", []string{"강의", "튜토리얼", "강좌"}},
	{"review", []string{"리뷰", "후기"}},
	{"mukbang", []string{"먹방", "eating show"}},
}

var englishStopwords = wordSet(`the a an and or but in on at to for of with by from as is was are were been be
have has had do does did will would could should may might must shall can need this that these those
it its my your our their his her what which who whom how when where why all each every both few more most
other some such no not only own same so than too very just also now here there then
official video music live new full hd mv`)

var koreanStopwords = wordSet(`그 이 저 것 수 등 및 더 를 을 에 의 가 는 은 로 으로 에서 까지 부터 와 과
하다 되다 있다 없다 같다 위해 통해 대한`)

type category struct {
	name     string
	keywords []string
}

// DefaultCategory is reported when nothing else matches.
const DefaultCategory = "general"

var categories = []category{
	{"music", []string{
		"music", "song", "mv", "cover", "live", "concert", "playlist",
		"음악", "노래", "뮤비", "커버", "라이브", "콘서트",
		"lofi", "lo-fi", "jazz", "rock", "pop", "hip-hop", "hiphop", "edm", "classical",
		"acoustic", "indie", "r&b", "rnb", "발라드", "힙합", "재즈", "클래식", "케이팝", "kpop",
	}},
	{"gaming", []string{
		"game", "gaming", "gameplay", "게임", "플레이", "스트리밍", "stream", "twitch",
		"let's play", "walkthrough",
	}},
	{"tech", []string{
		"tech", "review", "unboxing", "coding", "programming", "리뷰", "개발", "코딩", "프로그래밍",
		"tutorial", "python", "javascript", "react", "ai", "machine learning",
	}},
	{"entertainment", []string{
		"vlog", "funny", "comedy", "예능", "브이로그", "일상", "mukbang", "먹방", "asmr",
		"reaction", "리액션",
	}},
	{"education", []string{
		"tutorial", "learn", "how to", "강의", "배우기", "공부", "lecture", "course", "class", "lesson",
	}},
}

// CategoryNames lists the taxonomy in its fixed order.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
