package spot

// Catalog returns the built-in Quebec spots seeded into an empty store.
func Catalog() []Spot {
	return []Spot{
		{
			ID: "qc-lac-beauport", Name: "Lac-Beauport",
			Latitude: 46.9620, Longitude: -71.2930,
			Description: "Plage municipale avec location de planches, eau peu profonde près du bord.",
			Type:        "lac", Address: "Chemin du Tour-du-Lac, Lac-Beauport, QC", Rating: 4.6,
		},
		{
			ID: "qc-lac-saint-joseph", Name: "Lac Saint-Joseph",
			Latitude: 46.9080, Longitude: -71.6390,
			Description: "Grand plan d'eau abrité, idéal pour les longues sorties du matin.",
			Type:        "lac", Address: "Fossambault-sur-le-Lac, QC", Rating: 4.5,
		},
		{
			ID: "qc-baie-de-beauport", Name: "Baie de Beauport",
			Latitude: 46.8430, Longitude: -71.1960,
			Description: "Accès au fleuve Saint-Laurent, marées et courants à surveiller.",
			Type:        "fleuve", Address: "1 Boulevard Henri-Bourassa, Québec, QC", Rating: 4.2,
		},
		{
			ID: "qc-plage-jacques-cartier", Name: "Plage Jacques-Cartier",
			Latitude: 46.7560, Longitude: -71.3330,
			Description: "Rive du Saint-Laurent face aux ponts, vent de travers fréquent.",
			Type:        "fleuve", Address: "Chemin du Foulon, Québec, QC", Rating: 3.9,
		},
		{
			ID: "qc-riviere-saint-charles", Name: "Rivière Saint-Charles",
			Latitude: 46.8220, Longitude: -71.2410,
			Description: "Parcours urbain tranquille entre les parcs riverains.",
			Type:        "rivière", Address: "Parc Cartier-Brébeuf, Québec, QC", Rating: 4.0,
		},
		{
			ID: "qc-riviere-jacques-cartier", Name: "Rivière Jacques-Cartier",
			Latitude: 47.1620, Longitude: -71.4020,
			Description: "Section d'eau vive avec seuils techniques, réservée aux pagayeurs aguerris.",
			Type:        "rivière", Address: "Stoneham-et-Tewkesbury, QC", Rating: 4.4,
			Hazards: &Hazards{Rapids: true, RapidsClass: "R3"},
		},
		{
			ID: "qc-riviere-saint-maurice", Name: "Rivière Saint-Maurice",
			Latitude: 46.5380, Longitude: -72.7450,
			Description: "Tronçon en aval d'un seuil déversant, remous dangereux au pied de l'ouvrage.",
			Type:        "rivière", Address: "Shawinigan, QC", Rating: 3.5,
			Hazards: &Hazards{LowHeadDam: true},
		},
		{
			ID: "mtl-mille-iles", Name: "Parc de la Rivière-des-Mille-Îles",
			Latitude: 45.6080, Longitude: -73.7880,
			Description: "Marais et chenaux abrités, faune abondante, location sur le site.",
			Type:        "rivière", Address: "345 Boulevard Sainte-Rose, Laval, QC", Rating: 4.7,
		},
		{
			ID: "mtl-canal-lachine", Name: "Canal de Lachine",
			Latitude: 45.4810, Longitude: -73.5800,
			Description: "Canal urbain sans courant, circulation de bateaux à moteur légère.",
			Type:        "canal", Address: "Marché Atwater, Montréal, QC", Rating: 4.1,
		},
		{
			ID: "mtl-lac-des-deux-montagnes", Name: "Lac des Deux Montagnes",
			Latitude: 45.4790, Longitude: -73.9830,
			Description: "Parc national d'Oka, grande plage de sable et eau chaude en été.",
			Type:        "lac", Address: "2020 Chemin d'Oka, Oka, QC", Rating: 4.5,
		},
		{
			ID: "est-lac-memphremagog", Name: "Lac Memphrémagog",
			Latitude: 45.2580, Longitude: -72.1480,
			Description: "Baie de Magog, vagues possibles par vent du sud.",
			Type:        "lac", Address: "Plage des Cantons, Magog, QC", Rating: 4.3,
		},
		{
			ID: "est-lac-massawippi", Name: "Lac Massawippi",
			Latitude: 45.1740, Longitude: -72.0000,
			Description: "Lac étroit entouré de collines, eau claire.",
			Type:        "lac", Address: "North Hatley, QC", Rating: 4.6,
		},
		{
			ID: "lau-lac-tremblant", Name: "Lac Tremblant",
			Latitude: 46.2200, Longitude: -74.5900,
			Description: "Eau froide et limpide au pied du mont, départ de la plage Parc.",
			Type:        "lac", Address: "Mont-Tremblant, QC", Rating: 4.8,
		},
		{
			ID: "cha-ile-orleans", Name: "Île d'Orléans, pointe ouest",
			Latitude: 46.8700, Longitude: -71.1200,
			Description: "Tour de l'île sur le fleuve, courants de marée forts.",
			Type:        "fleuve", Address: "Sainte-Pétronille, QC", Rating: 4.0,
		},
		{
			ID: "cot-tadoussac", Name: "Baie de Tadoussac",
			Latitude: 48.1430, Longitude: -69.7130,
			Description: "Eau salée à l'embouchure du Saguenay, baleines au large.",
			Type:        "mer", Address: "Tadoussac, QC", Rating: 4.9,
		},
		{
			ID: "mad-havre-aubert", Name: "Havre-Aubert",
			Latitude: 47.2400, Longitude: -61.8400,
			Description: "Lagune des Îles-de-la-Madeleine ouverte sur le golfe.",
			Type:        "mer", Address: "Îles-de-la-Madeleine, QC", Rating: 4.7,
		},
	}
}
