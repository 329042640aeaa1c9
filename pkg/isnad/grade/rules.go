package grade

import "github.com/mki/isnad/pkg/isnad"

type rule struct {
	name       string
	keywords   []string
	excludes   []string
	status     isnad.Status
	generation isnad.Generation
}

var kinship = []string{
	"client", "mawla", "freed", "servant", "relative", "wife", "mother of the believers",
	"uncle", "aunt", "cousin", "daughter", "grandson", "household", "ahl al-bayt",
	"مولى", "خادم", "زوج", "ام المؤمنين", "ابن عم", "بنت", "سبط", "عم رسول", "عم النبي",
}

// notProphet marks text that mentions the Prophet while describing someone
// else, such as a companion's note "narrated from the Messenger of Allah".
var notProphet = append([]string{
	"comp.", "companion", "(ra)", "sahabi", "follower", "narrated from",
	"صحابي", "رضي الله", "تابعي", "عن رسول الله", "عن النبي",
}, kinship...)

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{
		name: "prophet",
		keywords: []string{
			"prophet muhammad", "the prophet (saw)", "messenger of allah", "rasulullah",
			"rasul allah", "(pbuh)", "ﷺ", "صلى الله عليه وسلم", "رسول الله", "النبي",
		},
		excludes:   notProphet,
		status:     isnad.StatusProphet,
		generation: isnad.GenerationProphet,
	},
	{
		name: "companion",
		keywords: []string{
			"comp.", "companion", "sahabi", "sahaba", "(ra)", "صحابي", "صحابيه",
			"له صحبه", "رضي الله عنه", "رضي الله عنها",
		},
		status:     isnad.StatusCompanion,
		generation: isnad.GenerationCompanions,
	},
	{
		name:     "follower",
		keywords: []string{"follower", "tabi'", "tabii", "tabi`i", "tabiee", "تابعي"},
		excludes: []string{
			"successor to", "successors to", "of the followers", "of followers",
			"follower of", "tabi' al-tabi", "tabi al-tabi", "atba", "اتباع", "تابع التابعين",
		},
		status:     isnad.StatusTrustworthy,
		generation: isnad.GenerationSuccessors,
	},
	{
		name: "successor-to-follower",
		keywords: []string{
			"successor to follower", "successors to follower", "successor to the follower",
			"follower of follower", "follower of the follower", "of the followers",
			"tabi' al-tabi", "tabi al-tabi", "atba' al-tabi", "اتباع التابعين", "تابع التابعين",
		},
		status:     isnad.StatusTrustworthy,
		generation: isnad.GenerationSuccessorsOfSuccessor,
	},
	{
		name: "century-scholar",
		keywords: []string{
			"1st century", "2nd century", "3rd century", "4th century", "5th century",
			"century ah", "century hijri", "القرن",
		},
		status:     isnad.StatusTrustworthy,
		generation: isnad.GenerationLater,
	},
	{
		name: "trustworthy",
		keywords: []string{
			"thiqah", "thiqa", "trustworthy", "reliable", "thabt", "hafiz", "hujjah",
			"ثقه", "ثبت", "حافظ", "حجه",
		},
		status:     isnad.StatusTrustworthy,
		generation: isnad.GenerationLater,
	},
	{
		name: "truthful",
		keywords: []string{
			"saduq", "sadooq", "truthful", "la ba'sa bihi", "la basa bihi",
			"صدوق", "لا باس به",
		},
		status:     isnad.StatusTruthful,
		generation: isnad.GenerationLater,
	},
	{
		name: "weak",
		keywords: []string{
			"da'if", "daif", "da`if", "da'eef", "weak", "matruk", "matrook", "abandoned",
			"munkar", "liar", "kadhdhab", "ضعيف", "متروك", "منكر", "كذاب",
		},
		status:     isnad.StatusWeak,
		generation: isnad.GenerationLater,
	},
	{
		name: "collector",
		keywords: []string{
			"imam", "collector", "compiler", "author of", "muhaddith",
			"امام", "مصنف", "صاحب السنن", "صاحب الصحيح",
		},
		status:     isnad.StatusCollector,
		generation: isnad.GenerationLater,
	},
	{
		name: "client-of-prophet",
		keywords: []string{
			"client of the prophet", "client of prophet", "mawla of the prophet",
			"freed slave of the prophet", "servant of the prophet",
			"مولى رسول الله", "مولى النبي", "خادم رسول الله", "خادم النبي",
		},
		status:     isnad.StatusCompanion,
		generation: isnad.GenerationCompanions,
	},
	{
		name: "prophet-relative",
		keywords: []string{
			"wife of the prophet", "mother of the believers", "uncle of the prophet",
			"cousin of the prophet", "daughter of the prophet", "grandson of the prophet",
			"household of the prophet", "ahl al-bayt",
			"ام المؤمنين", "زوج النبي", "بنت رسول الله", "ابن عم رسول الله", "سبط رسول الله",
			"عم رسول الله", "عم النبي",
		},
		status:     isnad.StatusCompanion,
		generation: isnad.GenerationCompanions,
	},
}
