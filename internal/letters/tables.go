package letters

// families lists every consonant family in vowel order. The first glyph of
// each row is the family representative.
var families = []string{
	"ሀሁሂሃሄህሆ",
	"ለሉሊላሌልሎሏ",
	"መሙሚማሜምሞሟ",
	"ረሩሪራሬርሮሯ",
	"ሰሱሲሳሴስሶሷ",
	"ሸሹሺሻሼሽሾሿ",
	"ቀቁቂቃቄቅቆቋ",
	"በቡቢባቤብቦቧ",
	"ተቱቲታቴትቶቷ",
	"ቸቹቺቻቼችቾቿ",
	"ነኑኒናኔንኖኗ",
	"ኘኙኚኛኜኝኞኟ",
	"አኡኢኣኤእኦኧ",
	"ከኩኪካኬክኮኳ",
	"ወዉዊዋዌውዎ",
	"ዘዙዚዛዜዝዞዟ",
	"ዠዡዢዣዤዥዦዧ",
	"የዩዪያዬይዮ",
	"ደዱዲዳዴድዶዷ",
	"ጀጁጂጃጄጅጆጇ",
	"ገጉጊጋጌግጎጓ",
	"ጠጡጢጣጤጥጦጧ",
	"ጨጩጪጫጬጭጮጯ",
	"ፈፉፊፋፌፍፎፏ",
	"ፐፑፒፓፔፕፖፗ",
	"ኸኹኺኻኼኽኾዃ",
	"ጰጱጲጳጴጵጶጷ",
	"ፀፁፂፃፄፅፆ",
	"ቨቩቪቫቬቭቮቯ",
}

// variants pairs each historically interchangeable row with the canonical
// row it collapses into, glyph by glyph.
var variants = []struct{ from, to string }{
	{"ሠሡሢሣሤሥሦሧ", "ሰሱሲሳሴስሶሷ"},
	{"ሐሑሒሓሔሕሖ", "ሀሁሂሃሄህሆ"},
	{"ኀኁኂኃኄኅኆ", "ሀሁሂሃሄህሆ"},
	{"ዐዑዒዓዔዕዖ", "አኡኢኣኤእኦ"},
	{"ጸጹጺጻጼጽጾ", "ፀፁፂፃፄፅፆ"},
}
