package analyzer

// legalTerms is the fixed dictionary of Turkish legal and administrative
// terms matched by substring against lowercased text.
var legalTerms = []string{
	// Core legislative terms
	"kanun", "madde", "fıkra", "bent", "tüzük", "yönetmelik", "genelge",
	"kararname", "cumhurbaşkanlığı", "bakanlar kurulu", "resmi gazete",
	"anayasa", "türk ceza kanunu", "medeni kanun", "borçlar kanunu",
	"iş kanunu", "vergi kanunu", "ticaret kanunu", "sosyal güvenlik",

	// Legal concepts
	"hak", "yükümlülük", "sorumluluk", "ceza", "para cezası", "hapis",
	"tazminat", "faiz", "gecikme faizi", "vade", "süre", "müddet",
	"ihbar", "tebliğ", "duyuru", "ilan", "başvuru", "dilekçe",

	// Institutions
	"maliye bakanlığı", "adalet bakanlığı", "içişleri bakanlığı",
	"milli eğitim bakanlığı", "sağlık bakanlığı", "çevre bakanlığı",
	"gelir idaresi", "vergi dairesi", "mahkeme", "savcılık", "emniyet",

	// Tax terms
	"kdv", "katma değer vergisi", "gelir vergisi", "kurumlar vergisi",
	"damga vergisi", "harç", "resim", "vergi beyannamesi", "matrah",
	"stopaj", "tevkifat", "iade", "mahsup", "tahakkuk", "tahsilat",
}

// stopWords are common Turkish function words and suffix-like tokens
// excluded from keyword extraction.
var stopWords = map[string]struct{}{
	"ve": {}, "veya": {}, "ile": {}, "için": {}, "olan": {}, "olarak": {},
	"bu": {}, "şu": {}, "o": {},
	"bir": {}, "iki": {}, "üç": {}, "dört": {}, "beş": {}, "altı": {},
	"yedi": {}, "sekiz": {}, "dokuz": {}, "on": {},
	"da": {}, "de": {}, "ta": {}, "te": {}, "den": {}, "dan": {},
	"ten": {}, "tan": {}, "la": {}, "le": {},
	"ya": {}, "ye": {}, "na": {}, "sa": {}, "se": {}, "ka": {}, "ke": {},
	"ga": {}, "ge": {},
	"ın": {}, "in": {}, "un": {}, "ün": {}, "nın": {}, "nin": {},
	"nun": {}, "nün": {},
	"ı": {}, "i": {}, "u": {}, "ü": {}, "sı": {}, "si": {}, "su": {},
	"sü": {}, "nı": {}, "ni": {}, "nu": {}, "nü": {},
	"dir": {}, "dır": {}, "dur": {}, "dür": {}, "tir": {}, "tır": {},
	"tur": {}, "tür": {},
	"mı": {}, "mi": {}, "mu": {}, "mü": {}, "mıdır": {}, "midir": {},
	"mudur": {}, "müdür": {},
	"her": {}, "tüm": {}, "bütün": {}, "kimi": {}, "bazı": {},
	"hangi": {}, "ne": {}, "nerede": {}, "nereye": {}, "nereden": {},
	"nasıl": {}, "niçin": {}, "neden": {}, "niye": {}, "kim": {},
}

// popularTerms pads search suggestions when history matches run short.
var popularTerms = []string{
	"vergi kanunu", "türk ceza kanunu", "medeni kanun",
	"borçlar kanunu", "iş kanunu", "sosyal güvenlik",
	"ticaret kanunu", "çevre kanunu", "eğitim", "sağlık",
}

// PopularTerms returns the fixed suggestion fallback list.
func PopularTerms() []string {
	out := make([]string, len(popularTerms))
	copy(out, popularTerms)
	return out
}
