package paginator

// Finestra scorrevole dei numeri di pagina mostrati dalla navigazione
// delle liste. La formula riproduce esattamente il comportamento storico
// dell'interfaccia: larghezza sempre min(10, Max), estremi sempre dentro
// [1, Max], pagina corrente sempre inclusa (il chiamante limita prima la
// pagina corrente a [1, Max]).

// Window finestra di paginazione calcolata
type Window struct {
	// Max numero totale di pagine
	Max int
	// Inizio prima pagina mostrata
	Inizio int
	// Fine ultima pagina mostrata
	Fine int
}

// Compute calcola la finestra per totale elementi, dimensione pagina e
// pagina corrente. pageSize <= 0 viene normalizzato a 1; con zero elementi
// la finestra è [1, 1].
func Compute(total int64, pageSize, page int) Window {
	if pageSize <= 0 {
		pageSize = 1
	}
	max := int((total + int64(pageSize) - 1) / int64(pageSize))
	if max < 1 {
		max = 1
	}

	w := Window{Max: max}
	switch {
	case max <= 10:
		w.Inizio = 1
		w.Fine = max
	case page+5 <= max:
		w.Inizio = page - 4
		if w.Inizio < 1 {
			w.Inizio = 1
		}
		w.Fine = w.Inizio + 9
	default:
		w.Fine = page + 5
		if w.Fine > max {
			w.Fine = max
		}
		w.Inizio = w.Fine - 9
	}
	return w
}

// Clamp limita la pagina corrente all'intervallo [1, maxPage]
func Clamp(page, maxPage int) int {
	if page < 1 {
		return 1
	}
	if maxPage >= 1 && page > maxPage {
		return maxPage
	}
	return page
}
