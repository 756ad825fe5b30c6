package analytics

import (
	"sort"
	"strings"
)

type Analytics struct{}

// stopwords is the Indonesian stop-word list used for keyword analysis,
// plus the program vocabulary that appears in virtually every article and
// therefore carries no signal.
// This list can be extended as needed.
var stopwords = map[string]struct{}{
	"ada": {}, "adalah": {}, "adanya": {}, "adapun": {}, "agak": {},
	"agar": {}, "akan": {}, "akankah": {}, "akhir": {}, "akhirnya": {},
	"aku": {}, "akulah": {}, "amat": {}, "anda": {}, "andalah": {},
	"antar": {}, "antara": {}, "antaranya": {}, "apa": {}, "apaan": {},
	"apabila": {}, "apakah": {}, "apalagi": {}, "apatah": {}, "artinya": {},
	"atas": {}, "atau": {}, "ataukah": {}, "ataupun": {},

	"bagai": {}, "bagaikan": {}, "bagaimana": {}, "bagaimanakah": {},
	"bagaimanapun": {}, "bagi": {}, "bagian": {}, "bahkan": {}, "bahwa": {},
	"bahwasanya": {}, "baik": {}, "bakal": {}, "bakalan": {}, "banyak": {},
	"baru": {}, "bawah": {}, "beberapa": {}, "begini": {}, "beginian": {},
	"beginikah": {}, "beginilah": {}, "begitu": {}, "begitukah": {},
	"begitulah": {}, "begitupun": {}, "bekerja": {}, "belakang": {},
	"belum": {}, "belumlah": {}, "benar": {}, "benarkah": {}, "berada": {},
	"berapa": {}, "berapakah": {}, "berapalah": {}, "berapapun": {},
	"berarti": {}, "berbagai": {}, "berikut": {}, "berikutnya": {},
	"bersama": {}, "berupa": {}, "besar": {}, "betulkah": {}, "biasa": {},
	"biasanya": {}, "bila": {}, "bilakah": {}, "bisa": {}, "bisakah": {},
	"boleh": {}, "bolehkah": {}, "bolehlah": {}, "buat": {}, "bukan": {},
	"bukankah": {}, "bukanlah": {}, "bukannya": {},

	"cara": {}, "caranya": {}, "cukup": {}, "cukupkah": {}, "cukuplah": {},

	"dahulu": {}, "dalam": {}, "dan": {}, "dapat": {}, "dari": {},
	"daripada": {}, "datang": {}, "dekat": {}, "demi": {}, "demikian": {},
	"demikianlah": {}, "dengan": {}, "depan": {}, "di": {}, "dia": {},
	"dialah": {}, "diantara": {}, "diantaranya": {}, "dikarenakan": {},
	"dini": {}, "diri": {}, "dirinya": {}, "disebut": {}, "disini": {},
	"disinilah": {}, "ditanya": {}, "dong": {}, "dua": {}, "dulu": {},

	"empat": {}, "enggak": {}, "enggaknya": {}, "entah": {}, "entahlah": {},

	"guna": {}, "gunakan": {},

	"hal": {}, "hampir": {}, "hanya": {}, "hanyalah": {}, "hari": {},
	"harus": {}, "haruslah": {}, "harusnya": {}, "hendak": {},
	"hendaklah": {}, "hendaknya": {}, "hingga": {},

	"ia": {}, "ialah": {}, "ibarat": {}, "ingin": {}, "inginkah": {},
	"ini": {}, "inikah": {}, "inilah": {}, "itu": {}, "itukah": {},
	"itulah": {},

	"jadi": {}, "jadilah": {}, "jadinya": {}, "jangan": {}, "jangankan": {},
	"janganlah": {}, "jika": {}, "jikalau": {}, "juga": {}, "jumlah": {},
	"justru": {},

	"kala": {}, "kalau": {}, "kalaulah": {}, "kalaupun": {}, "kali": {},
	"kalian": {}, "kami": {}, "kamilah": {}, "kamu": {}, "kamulah": {},
	"kan": {}, "kapan": {}, "kapankah": {}, "kapanpun": {}, "karena": {},
	"karenanya": {}, "kata": {}, "katanya": {}, "ke": {}, "kebetulan": {},
	"kecil": {}, "kedua": {}, "keduanya": {}, "keinginan": {},
	"kelamaan": {}, "kelihatan": {}, "kelihatannya": {}, "kelima": {},
	"keluar": {}, "kembali": {}, "kemudian": {}, "kemungkinan": {},
	"kenapa": {}, "kepada": {}, "kepadanya": {}, "kesampaian": {},
	"keseluruhan": {}, "keterlaluan": {}, "ketika": {}, "khususnya": {},
	"kini": {}, "kinilah": {}, "kiranya": {}, "kita": {}, "kitalah": {},
	"kok": {},

	"lagi": {}, "lagian": {}, "lah": {}, "lain": {}, "lainnya": {},
	"lalu": {}, "lama": {}, "lamanya": {}, "lebih": {}, "lewat": {},
	"lima": {}, "luar": {},

	"macam": {}, "maka": {}, "makanya": {}, "makin": {}, "malah": {},
	"malahan": {}, "mampu": {}, "mana": {}, "manakala": {}, "manalagi": {},
	"masih": {}, "masihkah": {}, "masing": {}, "mau": {}, "maupun": {},
	"melainkan": {}, "melakukan": {}, "melalui": {}, "memang": {},
	"memiliki": {}, "mempunyai": {}, "menjadi": {}, "menurut": {},
	"mereka": {}, "merekalah": {}, "merupakan": {}, "meski": {},
	"meskipun": {}, "misal": {}, "misalkan": {}, "misalnya": {},
	"mungkin": {}, "mungkinkah": {},

	"nah": {}, "namun": {}, "nanti": {}, "nantinya": {}, "nyaris": {},

	"oleh": {}, "olehnya": {}, "orang": {},

	"pada": {}, "padahal": {}, "padanya": {}, "paling": {}, "panjang": {},
	"pantas": {}, "para": {}, "pasti": {}, "pastilah": {}, "penting": {},
	"pentingnya": {}, "per": {}, "pernah": {}, "persoalan": {},
	"pertama": {}, "pertanyaan": {}, "pihak": {}, "pihaknya": {},
	"pukul": {}, "pula": {}, "pun": {}, "punya": {},

	"rasa": {}, "rasanya": {},

	"saat": {}, "saatnya": {}, "saja": {}, "sajalah": {}, "saling": {},
	"sama": {}, "sambil": {}, "sampai": {}, "sana": {}, "sangat": {},
	"sangatlah": {}, "satu": {}, "saya": {}, "sayalah": {}, "se": {},
	"sebab": {}, "sebabnya": {}, "sebagai": {}, "sebagaimana": {},
	"sebagainya": {}, "sebanyak": {}, "sebelum": {}, "sebelumnya": {},
	"sebenarnya": {}, "seberapa": {}, "sebesar": {}, "sebuah": {},
	"secara": {}, "sedang": {}, "sedangkan": {}, "sedikit": {},
	"sedikitnya": {}, "segera": {}, "seharusnya": {}, "sehingga": {},
	"sejak": {}, "sejumlah": {}, "sekali": {}, "sekaligus": {},
	"sekalipun": {}, "sekarang": {}, "sekitar": {}, "sekitarnya": {},
	"selain": {}, "selalu": {}, "selama": {}, "selamanya": {},
	"seluruh": {}, "seluruhnya": {}, "semakin": {}, "sementara": {},
	"sempat": {}, "semua": {}, "semuanya": {}, "sendiri": {},
	"sendirinya": {}, "seolah": {}, "seorang": {}, "sepanjang": {},
	"seperti": {}, "sepertinya": {}, "sering": {}, "seringnya": {},
	"serta": {}, "sesuatu": {}, "sesuatunya": {}, "sesudah": {},
	"sesudahnya": {}, "setelah": {}, "setempat": {}, "seterusnya": {},
	"setiap": {}, "setidaknya": {}, "siap": {}, "siapa": {}, "siapakah": {},
	"siapapun": {}, "sini": {}, "sinilah": {}, "suatu": {}, "sudah": {},
	"sudahkah": {}, "sudahlah": {}, "supaya": {},

	"tadi": {}, "tadinya": {}, "tak": {}, "tahu": {}, "tahun": {},
	"tanpa": {}, "tanya": {}, "tapi": {}, "telah": {}, "tempat": {},
	"tengah": {}, "tentang": {}, "tentu": {}, "tentulah": {},
	"tentunya": {}, "terdapat": {}, "terdiri": {}, "terhadap": {},
	"terhadapnya": {}, "terjadi": {}, "terjadilah": {}, "terjadinya": {},
	"terkait": {}, "terlalu": {}, "terlebih": {}, "termasuk": {},
	"ternyata": {}, "tersebut": {}, "tersebutlah": {}, "tertentu": {},
	"terus": {}, "tetap": {}, "tetapi": {}, "tiap": {}, "tidak": {},
	"tidakkah": {}, "tidaklah": {}, "tiga": {}, "toh": {},

	"untuk": {}, "usai": {},

	"wah": {}, "wahai": {}, "walau": {}, "walaupun": {},

	"ya": {}, "yaitu": {}, "yakni": {}, "yang": {},

	// Program vocabulary present in nearly every article
	"mbg": {}, "program": {}, "makan": {}, "gratis": {}, "bergizi": {},
	"bgn": {}, "gizi": {}, "nasional": {}, "badan": {},

	// English function words from quoted statements and wire copy
	"the": {}, "a": {}, "an": {}, "of": {}, "to": {}, "and": {}, "in": {},
	"is": {}, "for": {}, "on": {}, "with": {}, "at": {}, "by": {},
}

// IsStopword checks if a word should be filtered out of keyword analysis.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text)) // strings.Fields handles multiple spaces and newlines
	frequencies := make(map[string]int)

	for _, word := range words {
		// Remove punctuation from words
		word = strings.TrimFunc(word, func(r rune) bool {
			// Keep only lowercase letters and numbers
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})

		// Skip if it's a stop word or empty after cleaning
		if _, exists := stopwords[word]; exists || word == "" {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}
