package brand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func validProfile() *BrandProfile {
	return &BrandProfile{
		Name:            "Asha",
		Description:     "Street food explorer",
		Location:        &Location{City: "Pune", State: "Maharashtra", Country: "India"},
		PrimaryPlatform: PlatformInstagram,
	}
}

func TestLocalLanguageForState(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"Maharashtra", "Marathi"},
		{"Karnataka", "Kannada"},
		{"Tamil Nadu", "Tamil"},
		{"Kerala", "Hindi"},
		{"", "Hindi"},
		{"maharashtra", "Hindi"},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalLanguageForState(tt.state))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *BrandProfile)
		wantErr string
	}{
		{name: "valid", mutate: func(p *BrandProfile) {}},
		{name: "no location", mutate: func(p *BrandProfile) { p.Location = nil }},
		{name: "coordinates pair", mutate: func(p *BrandProfile) {
			p.Location.Latitude, p.Location.Longitude = ptr(18.52), ptr(73.85)
		}},
		{name: "missing state", mutate: func(p *BrandProfile) { p.Location.State = "" }, wantErr: "location.state"},
		{name: "latitude only", mutate: func(p *BrandProfile) { p.Location.Latitude = ptr(18.52) }, wantErr: "location.longitude"},
		{name: "longitude only", mutate: func(p *BrandProfile) { p.Location.Longitude = ptr(73.85) }, wantErr: "location.latitude"},
		{name: "latitude out of range", mutate: func(p *BrandProfile) {
			p.Location.Latitude, p.Location.Longitude = ptr(123), ptr(73.85)
		}, wantErr: "location.latitude"},
		{name: "bad platform", mutate: func(p *BrandProfile) { p.PrimaryPlatform = "MySpace" }, wantErr: "primaryPlatform"},
		{name: "bad social link", mutate: func(p *BrandProfile) {
			p.SocialLinks = map[Platform]string{PlatformX: "not a url"}
		}, wantErr: "socialLinks"},
		{name: "empty social link allowed", mutate: func(p *BrandProfile) {
			p.SocialLinks = map[Platform]string{PlatformX: ""}
		}},
		{name: "missing name", mutate: func(p *BrandProfile) { p.Name = "" }, wantErr: "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := Validate(p)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
			assert.Contains(t, verr.Error(), tt.wantErr)
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestDataGraphicNormalize(t *testing.T) {
	g := &DataGraphic{Type: "Bar", Labels: []string{"a", "b", "c"}, Values: []float64{1, 2}}
	assert.True(t, g.Normalize())
	assert.Equal(t, ChartBar, g.Type)
	assert.Len(t, g.Labels, 2)
	assert.Len(t, g.Values, 2)

	empty := &DataGraphic{Type: ChartPie, Labels: []string{"a"}}
	assert.False(t, empty.Normalize())
	assert.Empty(t, empty.Labels)

	unknown := &DataGraphic{Type: "radar", Labels: []string{"a"}, Values: []float64{1}}
	assert.False(t, unknown.Normalize())

	var nilGraphic *DataGraphic
	assert.False(t, nilGraphic.Normalize())
}

func TestSocialLinksSummary(t *testing.T) {
	p := validProfile()
	assert.Equal(t, "None provided", p.SocialLinksSummary())

	p.SocialLinks = map[Platform]string{
		PlatformInstagram: "https://instagram.com/asha",
		PlatformX:         "https://x.com/asha",
		PlatformLinkedIn:  "",
	}
	assert.Equal(t, "X: https://x.com/asha, Instagram: https://instagram.com/asha", p.SocialLinksSummary())
}

func TestSourceText(t *testing.T) {
	s := &PostSuggestion{
		Content: "base",
		ToneVariants: []ToneVariant{
			{Tone: ToneHumorous, ContentEnglish: "funny"},
			{Tone: ToneSoft},
		},
	}
	assert.Equal(t, "funny", s.SourceText("humorous"))
	assert.Equal(t, "base", s.SourceText("Soft"))
	assert.Equal(t, "base", s.SourceText("Political"))
	assert.Nil(t, s.Variant("Bold"))
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("twitter")
	require.NoError(t, err)
	assert.Equal(t, PlatformX, p)

	p, err = ParsePlatform(" LinkedIn ")
	require.NoError(t, err)
	assert.Equal(t, PlatformLinkedIn, p)

	_, err = ParsePlatform("orkut")
	assert.Error(t, err)
}

func TestDemoProfile(t *testing.T) {
	p, err := DemoProfile(PlatformLinkedIn, &Location{City: "Bengaluru", State: "Karnataka"})
	require.NoError(t, err)
	assert.Equal(t, "Rakesh Prasad", p.Name)
	assert.Equal(t, PlatformLinkedIn, p.PrimaryPlatform)
	assert.Equal(t, []string{"Cinematic", "Vibrant"}, p.VisualStyles)
	require.NotNil(t, p.Location)
	assert.Equal(t, "India", p.Location.Country)
	assert.NoError(t, Validate(p))
}
