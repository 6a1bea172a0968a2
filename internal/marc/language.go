package marc

import "strings"

// iso639ThreeToTwo maps recognized three-letter codes — both the
// bibliographic (B) and terminologic (T) variants, per spec §4.3 —
// plus a short table of vernacular names, to their two-letter
// equivalent. Reproduced from the original collector-rs
// implementation's language_iso_code table (harvesting/src/oai/pmh.rs),
// which spec.md describes only by example.
var iso639ThreeToTwo = map[string]string{
	"alb": "sq", "arm": "hy", "baq": "eu", "bur": "my", "chi": "zh",
	"cze": "cs", "dut": "nl", "fre": "fr", "geo": "ka", "ger": "de",
	"gre": "el", "ice": "is", "mac": "mk", "mao": "mi", "may": "ms",
	"per": "fa", "rum": "ro", "slo": "sk", "tib": "bo", "wel": "cy",

	"abk": "ab", "aar": "aa", "afr": "af", "aka": "ak", "sqi": "sq",
	"amh": "am", "ara": "ar", "arg": "an", "hye": "hy", "asm": "as",
	"ava": "av", "ave": "ae", "aym": "ay", "aze": "az", "bam": "bm",
	"bak": "ba", "eus": "eu", "bel": "be", "ben": "bn", "bis": "bi",
	"bos": "bs", "bre": "br", "bul": "bg", "mya": "my", "cat": "ca",
	"cha": "ch", "che": "ce", "nya": "ny", "zho": "zh", "chu": "cu",
	"chv": "cv", "cor": "kw", "cos": "co", "cre": "cr", "hrv": "hr",
	"ces": "cs", "dan": "da", "div": "dv", "nld": "nl", "dzo": "dz",
	"eng": "en", "epo": "eo", "est": "et", "ewe": "ee", "fao": "fo",
	"fij": "fj", "fin": "fi", "fra": "fr", "fry": "fy", "ful": "ff",
	"gla": "gd", "glg": "gl", "lug": "lg", "kat": "ka", "deu": "de",
	"ell": "el", "kal": "kl", "grn": "gn", "guj": "gu", "hat": "ht",
	"hau": "ha", "heb": "he", "her": "hz", "hin": "hi", "hmo": "ho",
	"hun": "hu", "isl": "is", "ido": "io", "ibo": "ig", "ind": "id",
	"ina": "ia", "ile": "ie", "iku": "iu", "ipk": "ik", "gle": "ga",
	"ita": "it", "jpn": "ja", "jav": "jv", "kan": "kn", "kau": "kr",
	"kas": "ks", "kaz": "kk", "khm": "km", "kik": "ki", "kin": "rw",
	"kir": "ky", "kom": "kv", "kon": "kg", "kor": "ko", "kua": "kj",
	"kur": "ku", "lao": "lo", "lat": "la", "lav": "lv", "lim": "li",
	"lin": "ln", "lit": "lt", "lub": "lu", "ltz": "lb", "mkd": "mk",
	"mlg": "mg", "msa": "ms", "mal": "ml", "mlt": "mt", "glv": "gv",
	"mri": "mi", "mar": "mr", "mah": "mh", "mon": "mn", "nau": "na",
	"nav": "nv", "nde": "nd", "nbl": "nr", "ndo": "ng", "nep": "ne",
	"nor": "no", "nob": "nb", "nno": "nn", "iii": "ii", "oci": "oc",
	"oji": "oj", "ori": "or", "orm": "om", "oss": "os", "pli": "pi",
	"pus": "ps", "fas": "fa", "pol": "pl", "por": "pt", "pan": "pa",
	"que": "qu", "ron": "ro", "roh": "rm", "run": "rn", "rus": "ru",
	"sme": "se", "smo": "sm", "sag": "sg", "san": "sa", "srd": "sc",
	"srp": "sr", "sna": "sn", "snd": "sd", "sin": "si", "slk": "sk",
	"slv": "sl", "som": "so", "sot": "st", "spa": "es", "sun": "su",
	"swa": "sw", "ssw": "ss", "swe": "sv", "tgl": "tl", "tah": "ty",
	"tgk": "tg", "tam": "ta", "tat": "tt", "tel": "te", "tha": "th",
	"bod": "bo", "tir": "ti", "ton": "to", "tso": "ts", "tsn": "tn",
	"tur": "tr", "tuk": "tk", "twi": "tw", "uig": "ug", "ukr": "uk",
	"urd": "ur", "uzb": "uz", "ven": "ve", "vie": "vi", "vol": "vo",
	"wln": "wa", "cym": "cy", "wol": "wo", "xho": "xh", "yid": "yi",
	"yor": "yo", "zha": "za", "zul": "zu",

	// vernacular names
	"esp": "es", "france": "fr", "francese": "fr", "inglese": "en",
	"italiano": "it", "spagnolo": "es", "tedesco": "de",
}

// LanguageISOCode normalizes a raw language string into a two-letter
// code per spec §4.3: lowercase, strip non-letters, pass through if
// already length 2, else look up the three-letter/vernacular table,
// else "unknown". It is idempotent: LanguageISOCode(LanguageISOCode(s))
// == LanguageISOCode(s), since every output is either a bare
// two-letter lowercase string that passes through unchanged or
// "unknown", which is not in the table and so maps to itself.
func LanguageISOCode(lang string) string {
	lower := strings.ToLower(lang)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) == 2 {
		return clean
	}
	if code, ok := iso639ThreeToTwo[clean]; ok {
		return code
	}
	return "unknown"
}
