package domain

// Category enumerates the closed set of service request categories.
type Category string

const (
	CategoryFacilities      Category = "Facilities"
	CategoryTechnicalIT     Category = "Technical / IT"
	CategoryBilling         Category = "Billing"
	CategoryInquiry         Category = "Inquiry"
	CategorySafetyEmergency Category = "Safety / Emergency"
)

// Categories returns the full category label set.
func Categories() []Category {
	return []Category{
		CategoryFacilities,
		CategoryTechnicalIT,
		CategoryBilling,
		CategoryInquiry,
		CategorySafetyEmergency,
	}
}

// Sentiment enumerates citizen sentiment labels.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments returns the full sentiment label set.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}
}

// ClassificationResult is the output of one scorer over redacted text.
// Distribution covers every label of that scorer and sums to 1 within
// floating tolerance; Confidence equals the maximum probability.
type ClassificationResult struct {
	Label        string             `json:"label"`
	Distribution map[string]float64 `json:"distribution"`
	Confidence   float64            `json:"confidence"`
}
