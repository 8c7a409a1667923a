package schedule

// Ordered alias tables for Showtime fields. The first alias with a usable
// value wins; add new source spellings here rather than in Normalize.
var (
	titleAliases              = []string{"Title", "title"}
	originalTitleAliases      = []string{"OriginalTitle", "originalTitle", "Original_title"}
	startAliases              = []string{"dttmShowStart", "showtime", "StartTime", "startTime"}
	eventIDAliases            = []string{"EventID", "eventId", "ID", "event_id"}
	showIDAliases             = []string{"ShowID", "showId", "ID", "id"}
	theatreAliases            = []string{"Theatre", "theatre", "Location", "location"}
	theatreIDAliases          = []string{"TheatreID", "theatreId", "LocationID", "locationId"}
	auditoriumAliases         = []string{"TheatreAuditorium", "auditorium", "Auditorium"}
	presentationMethodAliases = []string{"PresentationMethodAndLanguage", "PresentationMethod", "presentationMethod"}
	ratingAliases             = []string{"Rating", "rating", "RatingSymbol"}
	ratingImageAliases        = []string{"RatingImage", "RatingImageUrl", "ratingImageUrl"}
	lengthAliases             = []string{"LengthInMinutes", "length", "Duration", "runtime"}
	productionYearAliases     = []string{"ProductionYear", "productionYear", "Year", "year"}
	areaIDAliases             = []string{"AreaID", "areaId", "TheatreAreaID", "theatreAreaId"}
	imagesAliases             = []string{"Images", "images", "Image", "image"}
	portraitAliases           = []string{
		"EventLargeImagePortrait",
		"EventSmallImagePortrait",
		"PortraitImage",
		"Portrait",
		"Poster",
		"poster",
		"image",
		"ImagePortrait",
	}
	landscapeAliases = []string{"EventLargeImageLandscape", "LandscapeImage", "Landscape", "imageLandscape"}
)

// Keys searched when locating the show list inside a payload.
var (
	directShowKeys = []string{"shows", "Shows", "Show", "Showtime", "Items", "Events"}
	nestedShowKeys = []string{
		"Showtimes", "showtimes",
		"Shows", "shows",
		"Show", "show",
		"Schedule", "schedule",
		"Result", "result",
		"Data", "data",
		"Payload", "payload",
	}
)

// Keys searched when locating the theatre area list.
var (
	directAreaKeys = []string{"TheatreArea", "theatreArea", "areas", "Areas"}
	nestedAreaKeys = []string{"TheatreAreas", "theatreAreas", "Result", "result", "Data", "data"}
	areaIDKeys     = []string{"ID", "id", "AreaID", "areaId"}
	areaNameKeys   = []string{"Name", "name", "Title", "title"}
)
