package countries

// sampleJSON mirrors the shape of the /all payload.
const sampleJSON = `[
  {"name":{"common":"Peru","official":"Republic of Peru"},"cca3":"PER","capital":["Lima"],"region":"Americas","population":33000000,"flag":"🇵🇪","flags":{"png":"https://flagcdn.com/w320/pe.png","svg":"https://flagcdn.com/pe.svg"}},
  {"name":{"common":"Chile","official":"Republic of Chile"},"cca3":"CHL","capital":["Santiago"],"region":"Americas","population":19000000,"flag":"🇨🇱","flags":{"png":"https://flagcdn.com/w320/cl.png","svg":"https://flagcdn.com/cl.svg"}},
  {"name":{"common":"South Africa","official":"Republic of South Africa"},"cca3":"ZAF","capital":["Pretoria","Bloemfontein","Cape Town"],"region":"Africa","population":59308690,"flags":{"png":"https://flagcdn.com/w320/za.png","svg":"https://flagcdn.com/za.svg"}},
  {"name":{"common":"Antarctica","official":"Antarctica"},"cca3":"ATA","region":"Antarctic","population":1000,"flags":{"png":"https://flagcdn.com/w320/aq.png","svg":"https://flagcdn.com/aq.svg"}}
]`

func peruChile() []Country {
	return []Country{
		{Name: Name{Common: "Peru"}, CCA3: "PER", Population: 33000000},
		{Name: Name{Common: "Chile"}, CCA3: "CHL", Population: 19000000},
	}
}

func names(list []Country) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Name.Common)
	}
	return out
}
