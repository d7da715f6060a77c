package model

// NRI is the headline index of the mock dataset
var NRI = NRIHeadline{Score: 67, Delta: 4.2}

// Clusters is the static narrative hierarchy
var Clusters = []Cluster{
	{
		ID: 1, X: -30, Y: -22,
		Label:      "PREIS & TARIFE",
		Color:      "#ff9966",
		ReportText: `Das Narrativ "Übergewinne auf Kosten der Kunden" dominiert weiterhin die Diskussion in sozialen Medien. Besonders die Jahresabrechnungen treiben negatives Sentiment.`,
		RiskText:   `Risiko einer koordinierten "Zahlungsstreik"-Kampagne auf Telegram. Sammelklagen-Thematik gewinnt durch Berichterstattung des VKI an Fahrt.`,
		RiskLevel:  RiskRed,
		SubTopics: []SubTopic{
			{
				ID: "s1", Label: "Strompreise", OffX: -10, OffY: -10,
				Trend: TrendFlat, Sentiment: SentimentNeg, Score: -0.65, Volatility: VolatilityHigh,
				Explanation: "Kunden empfinden die Senkungen als zu gering im Vergleich zum Großhandelspreis.",
				Micro: []MicroNarrative{
					{ID: "m1", Label: "Nachzahlungs-Schock", OffX: -4, OffY: -4, Desc: "Nutzer posten Fotos hoher Nachzahlungen trotz Sparmaßnahmen."},
					{ID: "m2", Label: "Marktpreis-Gap", OffX: 4, OffY: 2, Desc: "Technischer Diskurs über Merit-Order und Endkundenpreise."},
				},
				Sources: []SourceShare{
					{Name: "Facebook", Label: "fb", Share: 30},
					{Name: "Kronen Zeitung", Label: "K", Share: 25},
					{Name: "Heute.at", Label: "H", Share: 15},
					{Name: "Arbeiterkammer", Label: "AK", Share: 15},
					{Name: "Twitter/X", Label: "X", Share: 10},
					{Name: "Reddit", Label: "r/", Share: 5},
				},
			},
			{
				ID: "s2", Label: "Fernwärme", OffX: 10, OffY: -5,
				Trend: TrendUp, Sentiment: SentimentNeg, Score: -0.45, Volatility: VolatilityMed,
				Explanation: `Die Indexanpassung der Fernwärme wird als "Monopol-Diktat" wahrgenommen.`,
				Micro: []MicroNarrative{
					{ID: "m3", Label: "Grundgebühr", OffX: 3, OffY: -3, Desc: "Kritik an hohen Fixkosten unabhängig vom Verbrauch."},
					{ID: "m4", Label: "Monopol-Kritik", OffX: -2, OffY: 3, Desc: "Debatte über die Entflechtung des Fernwärmenetzes."},
				},
				Sources: []SourceShare{
					{Name: "Reddit Wien", Label: "r/W", Share: 35},
					{Name: "Der Standard", Label: "derS", Share: 20},
					{Name: "Facebook", Label: "fb", Share: 20},
					{Name: "Kurier", Label: "Ku", Share: 15},
					{Name: "Twitter/X", Label: "X", Share: 10},
				},
			},
			{
				ID: "s3", Label: "Gaskosten", OffX: 0, OffY: 12,
				Trend: TrendDown, Sentiment: SentimentMixed, Score: -0.15, Volatility: VolatilityLow,
				Explanation: `Das Thema verliert an Volatilität, die "Raus aus Gas" Förderung sorgt für Unsicherheit.`,
				Micro: []MicroNarrative{
					{ID: "m5", Label: "CO2-Steuer", OffX: -3, OffY: 0, Desc: "Diskussion über die schrittweise Erhöhung."},
					{ID: "m6", Label: "Thermentausch", OffX: 3, OffY: 0, Desc: "Fragen zur Finanzierung des Umstiegs in Altbauwohnungen."},
				},
				Sources: []SourceShare{
					{Name: "ORF.at", Label: "ORF", Share: 30},
					{Name: "Die Presse", Label: "P", Share: 20},
					{Name: "Facebook", Label: "fb", Share: 20},
					{Name: "Google News", Label: "GN", Share: 15},
					{Name: "Der Standard", Label: "derS", Share: 15},
				},
			},
		},
	},
	{
		ID: 2, X: 30, Y: -7,
		Label:      "WÄRMEWENDE & INFRA",
		Color:      "#ffb28c",
		ReportText: `Infrastrukturprojekte wie "Geothermie Simmering" werden von Leitmedien sehr positiv aufgenommen.`,
		RiskText:   `Lokaler Widerstand gegen Fernwärme-Ausbau könnte sich zu einer stadtweiten "Verkehrschaos"-Debatte ausweiten.`,
		RiskLevel:  RiskAmber,
		SubTopics: []SubTopic{
			{
				ID: "s4", Label: "Großprojekte", OffX: -12, OffY: 5,
				Trend: TrendUp, Sentiment: SentimentPos, Score: 0.82, Volatility: VolatilityMed,
				Explanation: "Geothermie und Großwärmepumpen werden als Leuchtturmprojekte gefeiert.",
				Micro: []MicroNarrative{
					{ID: "m7", Label: "Geothermie Simmering", OffX: -3, OffY: -3, Desc: `Positives Echo auf die Versorgung von 125.000 Haushalten.`},
					{ID: "m8", Label: "Wasserstoff-Versuch", OffX: 3, OffY: 2, Desc: "Technik-Blogs loben die Pilotanlage im Kraftwerk Donaustadt."},
				},
				Sources: []SourceShare{
					{Name: "ORF Wien", Label: "ORF", Share: 40},
					{Name: "LinkedIn", Label: "in", Share: 25},
					{Name: "Der Standard", Label: "derS", Share: 15},
					{Name: "Stadt Wien", Label: "W", Share: 10},
					{Name: "Tech Blogs", Label: "TB", Share: 10},
				},
			},
			{
				ID: "s5", Label: "Baustellen", OffX: 12, OffY: -8,
				Trend: TrendUp, Sentiment: SentimentNeg, Score: -0.55, Volatility: VolatilityHigh,
				Explanation: `Der Fernwärme-Ausbau führt zu Verkehrsbehinderungen.`,
				Micro: []MicroNarrative{
					{ID: "m9", Label: "Gürtel-Stau", OffX: 1, OffY: -3, Desc: "Beschwerden über gleichzeitige Aufgrabungen in mehreren Bezirken."},
					{ID: "m10", Label: "Parkplatzverlust", OffX: 2, OffY: 3, Desc: "Lokaler Ärger über temporäre Halteverbote."},
				},
				Sources: []SourceShare{
					{Name: "Facebook Bezirke", Label: "fb", Share: 45},
					{Name: "Heute", Label: "H", Share: 20},
					{Name: "Nextdoor", Label: "nd", Share: 15},
					{Name: "Bezirkszeitung", Label: "BZ", Share: 15},
					{Name: "Twitter/X", Label: "X", Share: 5},
				},
			},
		},
	},
	{
		ID: 3, X: 0, Y: 29,
		Label:      "VERSORGUNG & INNOVATION",
		Color:      "#8e99ac",
		ReportText: `Das Thema Versorgungssicherheit ist stabil. E-Mobilität wächst stetig.`,
		RiskText:   `Sicherheitslücke bei Smart Metern könnte instrumentalisiert werden.`,
		RiskLevel:  RiskNeutral,
		SubTopics: []SubTopic{
			{
				ID: "s6", Label: "E-Mobilität", OffX: -10, OffY: -5,
				Trend: TrendUp, Sentiment: SentimentPos, Score: 0.35, Volatility: VolatilityMed,
				Explanation: "Ausbau der Ladeinfrastruktur wird honoriert, Verfügbarkeit in Außenbezirken kritisiert.",
				Micro: []MicroNarrative{
					{ID: "m11", Label: "Ladesäulen-Mangel", OffX: -3, OffY: -2, Desc: "Forderung nach mehr Schnellladern in Transdanubien."},
					{ID: "m12", Label: "E-Tarife", OffX: 3, OffY: 2, Desc: "Diskussion über die neuen Ladetarife."},
				},
				Sources: []SourceShare{
					{Name: "GoingElectric", Label: "GE", Share: 35},
					{Name: "Facebook E-Auto", Label: "fb", Share: 25},
					{Name: "Instagram", Label: "IG", Share: 20},
					{Name: "Twitter/X", Label: "X", Share: 10},
					{Name: "Auto Revue", Label: "AR", Share: 10},
				},
			},
			{
				ID: "s7", Label: "Smart Meter", OffX: 8, OffY: 6,
				Trend: TrendFlat, Sentiment: SentimentMixed, Score: 0.10, Volatility: VolatilityLow,
				Explanation: "Rollout weitgehend abgeschlossen. Fokus verschiebt sich auf das Webportal.",
				Micro: []MicroNarrative{
					{ID: "m13", Label: "Portal-Login", OffX: -2, OffY: -3, Desc: "Technische Probleme beim Login am Wochenende."},
					{ID: "m14", Label: "Datenschutz", OffX: 3, OffY: 2, Desc: "Verschwörungstheorien über Fernabschaltung (Nische)."},
				},
				Sources: []SourceShare{
					{Name: "Help.gv.at", Label: "gv", Share: 30},
					{Name: "Twitter/X", Label: "X", Share: 25},
					{Name: "Telegram", Label: "tg", Share: 25},
					{Name: "Futurezone", Label: "Fz", Share: 20},
				},
			},
		},
	},
}

// Actors is the tracked actor list of the overall view
var Actors = []Actor{
	{Name: "Arbeiterkammer Wien", Role: "Regulator / Watchdog", Reach: "2.1M", Color: "#ff9966", Initials: "AK"},
	{Name: "Kronen Zeitung", Role: "Boulevard Media", Reach: "4.5M", Color: "#ff7f45", Initials: "KR"},
	{Name: "ORF Wien", Role: "Public Broadcast", Reach: "3.2M", Color: "#d79f80", Initials: "ORF"},
	{Name: "Der Standard", Role: "Quality Media", Reach: "1.8M", Color: "#ffb28c", Initials: "dS"},
	{Name: "r/Wien Community", Role: "Social / Forum", Reach: "145K", Color: "#ff8a54", Initials: "r/"},
	{Name: "FB Bezirksgruppen", Role: "Social / Local", Reach: "320K", Color: "#c2cada", Initials: "fb"},
	{Name: "VKI", Role: "Consumer Protection", Reach: "890K", Color: "#ffd3bc", Initials: "VKI"},
	{Name: "Telegram Channels", Role: "Alt-Media", Reach: "12K", Color: "#8e99ac", Initials: "tg"},
	{Name: "E-Control", Role: "Energy Regulator", Reach: "410K", Color: "#e8a27c", Initials: "EC"},
	{Name: "Wiener Stadtwerke", Role: "Utility / Institution", Reach: "760K", Color: "#f0b896", Initials: "WS"},
	{Name: "Klimaschutzministerium", Role: "Political Institution", Reach: "1.2M", Color: "#b7c1d1", Initials: "BMK"},
	{Name: "Futurezone", Role: "Tech Media", Reach: "540K", Color: "#9fb0c7", Initials: "Fz"},
	{Name: "Mietervereinigung Wien", Role: "Civil Society", Reach: "230K", Color: "#ffc4a3", Initials: "MV"},
	{Name: "Bezirkszeitung Wien", Role: "Local Media", Reach: "680K", Color: "#d9b59f", Initials: "BZ"},
	{Name: "LinkedIn Energy Voices", Role: "Social / Professional", Reach: "95K", Color: "#a7b4c8", Initials: "in"},
	{Name: "TikTok Wien News", Role: "Social / Video", Reach: "270K", Color: "#ff9f70", Initials: "TT"},
	{Name: "YouTube Kommentar-Cluster", Role: "Social / Video", Reach: "180K", Color: "#c9a38d", Initials: "YT"},
	{Name: "Finanzmarktaufsicht", Role: "Financial Regulator", Reach: "150K", Color: "#8f9db3", Initials: "FMA"},
}

// BaseConnections is the name-keyed actor network before scoping
var BaseConnections = []ActorLink{
	{A: "Arbeiterkammer Wien", B: "Kronen Zeitung", Weight: 0.92},
	{A: "Arbeiterkammer Wien", B: "VKI", Weight: 0.87},
	{A: "Kronen Zeitung", B: "ORF Wien", Weight: 0.72},
	{A: "Der Standard", B: "ORF Wien", Weight: 0.78},
	{A: "r/Wien Community", B: "FB Bezirksgruppen", Weight: 0.76},
	{A: "Telegram Channels", B: "r/Wien Community", Weight: 0.64},
	{A: "Telegram Channels", B: "FB Bezirksgruppen", Weight: 0.58},
	{A: "Der Standard", B: "r/Wien Community", Weight: 0.46},
	{A: "Kronen Zeitung", B: "FB Bezirksgruppen", Weight: 0.66},
	{A: "VKI", B: "Der Standard", Weight: 0.62},
	{A: "E-Control", B: "Wiener Stadtwerke", Weight: 0.84},
	{A: "E-Control", B: "Klimaschutzministerium", Weight: 0.72},
	{A: "Wiener Stadtwerke", B: "ORF Wien", Weight: 0.7},
	{A: "Wiener Stadtwerke", B: "Bezirkszeitung Wien", Weight: 0.68},
	{A: "Klimaschutzministerium", B: "ORF Wien", Weight: 0.69},
	{A: "Klimaschutzministerium", B: "Der Standard", Weight: 0.64},
	{A: "Futurezone", B: "Der Standard", Weight: 0.61},
	{A: "Futurezone", B: "ORF Wien", Weight: 0.57},
	{A: "Futurezone", B: "LinkedIn Energy Voices", Weight: 0.56},
	{A: "Mietervereinigung Wien", B: "Arbeiterkammer Wien", Weight: 0.77},
	{A: "Mietervereinigung Wien", B: "VKI", Weight: 0.68},
	{A: "Bezirkszeitung Wien", B: "FB Bezirksgruppen", Weight: 0.73},
	{A: "Bezirkszeitung Wien", B: "Kronen Zeitung", Weight: 0.66},
	{A: "LinkedIn Energy Voices", B: "Wiener Stadtwerke", Weight: 0.63},
	{A: "TikTok Wien News", B: "YouTube Kommentar-Cluster", Weight: 0.71},
	{A: "TikTok Wien News", B: "FB Bezirksgruppen", Weight: 0.58},
	{A: "YouTube Kommentar-Cluster", B: "r/Wien Community", Weight: 0.56},
	{A: "Finanzmarktaufsicht", B: "E-Control", Weight: 0.59},
	{A: "Finanzmarktaufsicht", B: "Klimaschutzministerium", Weight: 0.55},
	{A: "Telegram Channels", B: "TikTok Wien News", Weight: 0.41},
	{A: "Futurezone", B: "YouTube Kommentar-Cluster", Weight: 0.4},
}
