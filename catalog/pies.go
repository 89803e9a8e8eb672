package catalog

// pies in size order
var pies = []PieceTier{
	{Name: "Lemon Tart", Radius: 20, AssetKey: "lemon_tart"},
	{Name: "Apple Cross", Radius: 28, AssetKey: "apple_cross"},
	{Name: "Apple Square", Radius: 35, AssetKey: "apple_square"},
	{Name: "Blueberry Pie", Radius: 43, AssetKey: "blueberry"},
	{Name: "Cherry Pie", Radius: 50, AssetKey: "cherry_cross"},
	{Name: "Chocolate Cream Pie", Radius: 58, AssetKey: "chocolate_cream"},
	{Name: "Custard Pie", Radius: 65, AssetKey: "custard"},
	{Name: "Key Lime Pie", Radius: 73, AssetKey: "key_lime"},
	{Name: "Lemon Meringue Pie", Radius: 80, AssetKey: "lemon_meringue"},
	{Name: "Oreo Pie", Radius: 88, AssetKey: "oreo"},
	{Name: "Pecan Pie", Radius: 95, AssetKey: "pecan"},
	{Name: "Pumpkin Pie", Radius: 103, AssetKey: "pumpkin"},
	{Name: "Raspberry Pie", Radius: 110, AssetKey: "raspberry"},
	{Name: "Strawberry Rhubarb Pie", Radius: 118, AssetKey: "shoofly"},
	{Name: "Tomato Pie", Radius: 125, AssetKey: "tomato"},
	{Name: "Tollhouse Cookie Pie", Radius: 133, AssetKey: "tollhouse"},
	{Name: "Chicken Pot Pie", Radius: 140, AssetKey: "chicken"},
	{Name: "Pizza Pie", Radius: 148, AssetKey: "pizza_pie"},
}

// Default returns the standard pie catalog
func Default() *Catalog {
	return MustNew(pies)
}
