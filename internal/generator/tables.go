package generator

type style struct {
	genre string
	mood  string
	tempo string
}

const (
	tempoFast     = "fast"
	tempoModerate = "moderate"
	tempoSlow     = "slow"
)

var styleByKeyword = map[string]style{
	"발라드": {"Ballad", "emotional", tempoSlow},
	"힙합":  {"Hip-hop", "energetic", tempoFast},
	"케이팝": {"K-pop", "upbeat", tempoModerate},
	"재즈":  {"Jazz", "smooth", tempoModerate},
	"클래식": {"Classical", "elegant", tempoSlow},
	"로파이": {"Lo-fi", "chill", tempoSlow},
	"인디":  {"Indie", "dreamy", tempoModerate},
	"록":   {"Rock", "powerful", tempoFast},
	"팝":   {"Pop", "catchy", tempoModerate},
	"알앤비": {"R&B", "soulful", tempoModerate},

	"edm":        {"EDM", "energetic", tempoFast},
	"acoustic":   {"Acoustic", "warm", tempoModerate},
	"indie":      {"Indie", "dreamy", tempoModerate},
	"rock":       {"Rock", "powerful", tempoFast},
	"pop":        {"Pop", "catchy", tempoModerate},
	"jazz":       {"Jazz", "smooth", tempoModerate},
	"lofi":       {"Lo-fi", "chill", tempoSlow},
	"lo-fi":      {"Lo-fi", "chill", tempoSlow},
	"classical":  {"Classical", "elegant", tempoSlow},
	"hiphop":     {"Hip-hop", "energetic", tempoFast},
	"hip-hop":    {"Hip-hop", "energetic", tempoFast},
	"r&b":        {"R&B", "soulful", tempoModerate},
	"rnb":        {"R&B", "soulful", tempoModerate},
	"ballad":     {"Ballad", "emotional", tempoSlow},
	"kpop":       {"K-pop", "upbeat", tempoModerate},
	"k-pop":      {"K-pop", "upbeat", tempoModerate},
	"ambient":    {"Ambient", "atmospheric", tempoSlow},
	"electronic": {"Electronic", "synthetic", tempoModerate},
	"synthwave":  {"Synthwave", "retro", tempoModerate},
	"chill":      {"Chill", "relaxed", tempoSlow},
	"piano":      {"Piano", "melodic", tempoModerate},
	"guitar":     {"Acoustic", "warm", tempoModerate},
}

const (
	contextLateNight = "late_night"
	contextMorning   = "morning"
	contextAfternoon = "afternoon"
	contextEvening   = "evening"
)

var moodsByTimeContext = map[string][]string{
	contextLateNight: {"Melancholic", "Dreamy", "Introspective"},
	contextMorning:   {"Fresh", "Uplifting", "Energetic"},
	contextAfternoon: {"Focused", "Productive", "Moderate"},
	contextEvening:   {"Relaxed", "Warm", "Nostalgic"},
}

const neutralMood = "Balanced"

var bpmByTempo = map[string]string{
	tempoFast:     "120-140 BPM",
	tempoModerate: "90-110 BPM",
	tempoSlow:     "60-85 BPM",
}

const defaultBPM = "100 BPM"

var energyByTempo = map[string]string{
	tempoFast:     "high",
	tempoModerate: "medium",
	tempoSlow:     "low",
}

var instrumentsByGenre = map[string]string{
	"Lo-fi":      "vinyl crackle, mellow piano, soft drums",
	"Jazz":       "piano, upright bass, brushed drums, saxophone",
	"Hip-hop":    "808 bass, trap hi-hats, synth pads",
	"K-pop":      "synth, punchy drums, bass drops, vocal layers",
	"EDM":        "synth leads, side-chain compression, build-ups",
	"Indie":      "acoustic guitar, soft synths, ambient pads",
	"Pop":        "piano, guitar, modern drums, vocal harmonies",
	"Ballad":     "piano, strings, soft percussion",
	"Rock":       "electric guitar, bass, drums, distortion",
	"Classical":  "orchestra, strings, piano",
	"Acoustic":   "acoustic guitar, soft percussion, warm bass",
	"R&B":        "smooth bass, Rhodes piano, soft drums",
	"Ambient":    "synthesizer pads, reverb, atmospheric textures",
	"Electronic": "synthesizers, drum machines, bass",
	"Synthwave":  "analog synths, arpeggios, retro drums",
	"Chill":      "soft piano, ambient pads, gentle percussion",
	"Piano":      "grand piano, soft strings, minimal percussion",
}

const (
	defaultInstruments = "piano, guitar, drums"
	defaultGenre       = "Pop"
)

type energyShift struct {
	tempo string
	mood  string
}

var energyShifts = map[string]energyShift{
	"low":  {"90-110 BPM", "uplifting, energetic"},
	"high": {"60-75 BPM", "calm, peaceful"},
}

var defaultEnergyShift = energyShift{"120-140 BPM", "powerful, intense"}

var moodContrasts = map[string]string{
	"chill":     "upbeat, happy",
	"energetic": "mellow, laid-back",
	"emotional": "confident, triumphant",
	"smooth":    "edgy, bold",
	"dreamy":    "grounded, rhythmic",
}

var alternateInstruments = map[string]string{
	"vinyl crackle, mellow piano, soft drums":       "warm synth pads, gentle guitar, subtle percussion",
	"piano, upright bass, brushed drums, saxophone": "electric piano, acoustic bass, brushes, trumpet",
	"808 bass, trap hi-hats, synth pads":            "deep bass, minimal drums, vocal chops",
	"synth, punchy drums, bass drops, vocal layers": "guitar riffs, live drums, bass groove, harmonies",
	"acoustic guitar, soft synths, ambient pads":    "piano, strings, gentle electronic elements",
}

const fallbackInstruments = "piano, soft synths, ambient textures, gentle percussion"

type fusion struct {
	style string
	mood  string
}

var fusions = map[string]fusion{
	"Lo-fi":     {"Lo-fi Jazz", "smooth, sophisticated"},
	"Jazz":      {"Jazz Fusion", "groovy, experimental"},
	"Hip-hop":   {"Hip-hop Soul", "soulful, rhythmic"},
	"K-pop":     {"K-pop R&B", "smooth, melodic"},
	"Pop":       {"Electropop", "modern, synth-driven"},
	"Indie":     {"Indie Electronic", "atmospheric, textured"},
	"EDM":       {"Future Bass", "melodic, emotional"},
	"Rock":      {"Alternative Rock", "atmospheric, dynamic"},
	"Classical": {"Neoclassical", "cinematic, epic"},
	"Ballad":    {"Soul Ballad", "deep, expressive"},
}
