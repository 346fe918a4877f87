package core

type MenuItem struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Restaurant is the record rendered into the homepage. Images and Menu are
// kept in display order.
type Restaurant struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Images      []string   `yaml:"images"`
	Menu        []MenuItem `yaml:"menu"`
}

const unsplashParams = "?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=1470&q=80"

// GourmetBox returns a fresh copy of the showcased restaurant. Callers may
// hold on to the result; nothing else shares its slices.
func GourmetBox() Restaurant {
	return Restaurant{
		Name:        "Gourmet Box",
		Description: "Exquisite dining experience in a luxurious setting",
		Images: []string{
			"https://images.unsplash.com/photo-1517248135467-4c7edcad34c4" + unsplashParams,
			"https://images.unsplash.com/photo-1552566626-52f8b828add9" + unsplashParams,
			"https://images.unsplash.com/photo-1554679665-f5537f187268" + unsplashParams,
		},
		Menu: []MenuItem{
			{Name: "Truffle Pasta", Price: "$24"},
			{Name: "Seafood Platter", Price: "$38"},
			{Name: "Chocolate Soufflé", Price: "$12"},
		},
	}
}
