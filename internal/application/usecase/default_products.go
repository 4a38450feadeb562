package usecase

import (
	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type defaultProduct struct {
	name, description, price, cutType string
}

// Surtido del Hofladen. Carnes en modo LOT (stock por faenas); huevos, miel y manteca en MANUAL.
var defaultCatalogue = []defaultProduct{
	{"Bio-Rindfleisch - Filet", "Zartes Rinderfilet aus biologischer Aufzucht, erstklassige Qualität", "45.00", "Rind"},
	{"Bio-Rindfleisch - Entrecôte", "Saftiges Entrecôte mit feiner Marmorierung", "38.00", "Rind"},
	{"Bio-Rindfleisch - Tafelspitz", "Klassischer Tafelspitz für traditionelle Gerichte", "28.00", "Rind"},
	{"Bio-Rindfleisch - Gulasch", "Hochwertiges Gulaschfleisch, perfekt für Eintöpfe", "22.00", "Rind"},
	{"Bio-Rindfleisch - Hackfleisch", "Frisch faschiertes Rindfleisch", "18.00", "Rind"},
	{"Bio-Schweinefleisch - Schnitzel", "Zartes Schweineschnitzel aus artgerechter Haltung", "16.00", "Schwein"},
	{"Bio-Schweinefleisch - Karree", "Saftiges Schweinekarree mit Fettrand", "18.00", "Schwein"},
	{"Bio-Schweinefleisch - Bauchfleisch", "Aromatisches Bauchfleisch für Braten und Grill", "14.00", "Schwein"},
	{"Bio-Schweinefleisch - Bratenstück", "Perfekt für Schweinsbraten", "15.00", "Schwein"},
	{"Bio-Lammfleisch - Keule", "Zarte Lammkeule aus Weidehaltung", "32.00", "Lamm"},
	{"Bio-Lammfleisch - Koteletts", "Saftige Lammkoteletts", "35.00", "Lamm"},
	{"Bio-Lammfleisch - Schulter", "Aromatische Lammschulter", "28.00", "Lamm"},
	{"Bio-Hendl - Ganzes Huhn", "Ganzes Bio-Hendl aus Freilandhaltung (ca. 1.5 kg)", "14.00", "Geflügel"},
	{"Bio-Hendl - Brust", "Zarte Hühnerbrust ohne Haut", "22.00", "Geflügel"},
	{"Bio-Hendl - Schenkel", "Saftige Hühnerschenkel", "12.00", "Geflügel"},
	{"Bio-Bratwurst", "Würzige Bratwurst aus eigenem Fleisch", "16.00", "Wurst"},
	{"Bio-Leberkäse", "Hausgemachter Leberkäse nach traditionellem Rezept", "12.00", "Wurst"},
	{"Bio-Speck", "Geräucherter Speck aus eigener Produktion", "24.00", "Speck"},
	{"Bio-Selchwurst", "Traditionelle geselchte Wurst", "18.00", "Wurst"},
	{"Bio-Eier", "Frische Eier aus Freilandhaltung (10 Stück pro kg)", "4.50", "Eier"},
	{"Bio-Honig", "Blütenhonig aus eigener Imkerei", "15.00", "Honig"},
	{"Bio-Schmalz", "Reines Schweineschmalz", "8.00", "Fett"},
}

var manualCutTypes = map[string]bool{"Eier": true, "Honig": true, "Fett": true}

// DefaultProducts surtido por defecto como requests de creación.
func DefaultProducts() []dto.CreateProductRequest {
	out := make([]dto.CreateProductRequest, 0, len(defaultCatalogue))
	for _, d := range defaultCatalogue {
		mode := entity.StockModeLot
		if manualCutTypes[d.cutType] {
			mode = entity.StockModeManual
		}
		out = append(out, dto.CreateProductRequest{
			Name:        d.name,
			Description: d.description,
			Price:       decimal.RequireFromString(d.price),
			MeatCutType: d.cutType,
			StockMode:   mode,
		})
	}
	return out
}
