package builder

import "maxim-atlas/backend/internal/graph"

var defaultKeywords = map[graph.Theme][]string{
	graph.ThemeSelfKnowledge: {
		"know thyself", "know yourself", "self", "fault", "faults", "mirror",
		"introspection", "weakness", "temperament", "nature", "defect", "defects",
		"know your", "self-knowledge", "own nature", "own character", "examine",
		"understand yourself", "personal", "inner", "disposition", "qualities",
	},
	graph.ThemePrudence: {
		"prudent", "prudence", "cautious", "careful", "restraint", "discretion",
		"foresight", "deliberate", "wary", "circumspect", "think before",
		"beforehand", "suspense", "reserve", "reserved", "guard", "guarded",
		"avoid", "prevent", "watch", "watchful", "heed", "thoughtful",
	},
	graph.ThemeSocialStrategy: {
		"friend", "friends", "ally", "allies", "enemy", "enemies", "court",
		"favour", "favor", "reputation", "esteem", "company", "associate",
		"society", "social", "dependence", "dependent", "patron", "please",
		"obligate", "obligation", "intercourse", "deal with", "dealing",
	},
	graph.ThemeLeadership: {
		"authority", "command", "govern", "governance", "rule", "ruler",
		"prince", "king", "superior", "subordinate", "power", "influence",
		"lead", "leader", "minister", "throne", "royal", "majesty",
		"dominion", "office", "employment", "position",
	},
	graph.ThemeCharacter: {
		"integrity", "honour", "honor", "virtue", "virtuous", "noble",
		"dignity", "character", "moral", "good", "goodness", "worthy",
		"upright", "merit", "excellence", "excellent", "perfect",
		"perfection", "complete", "greatness", "great man",
	},
	graph.ThemeIntelligence: {
		"intellect", "intelligent", "wise", "wisdom", "wit", "clever",
		"judgment", "judgement", "reason", "knowledge", "learn", "learned",
		"sage", "sagacious", "thought", "think", "mind", "understanding",
		"insight", "discernment", "genius", "talent",
	},
	graph.ThemeCommunication: {
		"speech", "speak", "silence", "silent", "persuade", "persuasion",
		"conceal", "concealment", "word", "words", "tongue", "talk",
		"say", "tell", "express", "eloquent", "eloquence", "secret",
		"mystery", "mysterious", "declare", "hint", "listen",
	},
	graph.ThemeFortune: {
		"fortune", "luck", "lucky", "unlucky", "chance", "opportunity",
		"moment", "timing", "time", "season", "seize", "occasion",
		"fate", "destiny", "star", "stars", "born", "favourable",
		"favorable", "ill-luck", "good luck", "right moment",
	},
	graph.ThemeAppearances: {
		"seem", "seeming", "appear", "appearance", "outside", "show",
		"display", "ostentation", "impression", "perceive", "perception",
		"surface", "outward", "visible", "eye", "eyes", "look",
		"spectacle", "ornament", "attire", "manner", "manners",
	},
	graph.ThemeAmbition: {
		"ambition", "ambitious", "achieve", "achievement", "excel",
		"distinction", "eminent", "eminence", "first", "highest",
		"success", "succeed", "accomplish", "fame", "glory", "immortal",
		"immortality", "renown", "triumph", "victory", "conquer", "hero",
		"enterprise", "endeavour", "endeavor", "effort",
	},
	graph.ThemeDealing: {
		"fool", "fools", "bore", "bores", "vulgar", "crowd", "mob",
		"people", "men", "man", "person", "others", "companion",
		"companions", "neighbour", "neighbor", "acquaintance",
		"everyone", "world", "mankind", "human", "opponent",
	},
	graph.ThemeModeration: {
		"moderate", "moderation", "balance", "extreme", "extremes",
		"excess", "temperance", "middle", "mean", "adapt", "adaptable",
		"flexible", "equilibrium", "vary", "variety", "restrain",
		"proportion", "enough", "sufficient", "too much", "too little",
	},
}
