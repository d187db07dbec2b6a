package score

// The keyword tables below are the tunable policy of the scorer. Point
// values and thresholds were tuned empirically against live Indian trend
// data; treat higher score as "ranked higher" and nothing more.

// ViralKeywords each add 10 points to a headline score.
var ViralKeywords = []string{
	"viral", "trending", "comeback", "surge", "trolled",
	"controversy", "backlash", "outrage", "sensation", "buzz",
	"breaking", "exclusive", "shocking", "massive", "epic",
	"incredible", "amazing", "stunning",
}

// Tier1Sources are trusted high-reach Indian news domains. A source
// containing any of these gets a flat 10 point bonus.
var Tier1Sources = []string{
	"timesofindia.indiatimes.com",
	"moneycontrol.com",
	"hindustantimes.com",
	"indianexpress.com",
	"ndtv.com",
	"economictimes.indiatimes.com",
	"business-standard.com",
	"livemint.com",
}

// BreakingTerms mark urgent breaking-news language (English and Hindi).
var BreakingTerms = []string{
	"breaking", "urgent", "alert", "live", "now", "just in", "developing",
	"बड़ी खबर", "तत्काल", "अभी", "लाइव",
}

// SocialViralTerms mark generic viral-content language on social trends.
var SocialViralTerms = []string{
	"viral", "trending", "shocking", "exposed", "scandal", "controversy",
	"वायरल", "ट्रेंडिंग",
}

// SensationalTerms are sensational adjectives common in shareable headlines.
var SensationalTerms = []string{
	"massive", "huge", "major", "historic", "unprecedented",
	"dramatic", "explosive", "devastating", "stunning",
	"बड़ा", "भारी", "ऐतिहासिक",
}

// PoliticalTerms cover high-impact Indian political figures and bodies.
var PoliticalTerms = []string{
	"modi", "rahul", "kejriwal", "parliament", "supreme court", "cbi", "ed",
	"मोदी", "राहुल", "केजरीवाल", "संसद",
}

// CrimeTerms cover crime and justice topics, which travel fastest of all.
var CrimeTerms = []string{
	"arrest", "raid", "murder", "rape", "scam", "corruption",
	"fraud", "terror", "attack",
	"गिरफ्तार", "छापेमारी", "हत्या", "घोटाला",
}

// EntertainmentTerms cover celebrity and sports viral staples.
var EntertainmentTerms = []string{
	"bollywood", "cricket", "ipl", "wedding", "death", "accident",
	"बॉलीवुड", "क्रिकेट", "शादी", "मौत",
}

// CountryTerms mark Indian context on a social trend.
var CountryTerms = []string{"india", "indian", "भारत", "hindi"}

// subredditBonus rewards communities whose hot posts historically map to
// nationwide trends.
var subredditBonus = map[string]int{
	"worldnews":        10,
	"india":            8,
	"unpopularopinion": 5,
}
