package main

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/media"
)

// buildProfile assembles the brand profile from flags.
func buildProfile(cmd *cobra.Command) (*brand.BrandProfile, error) {
	platform, err := brand.ParsePlatform(platformFlag)
	if err != nil {
		return nil, err
	}

	var loc *brand.Location
	if cityFlag != "" || stateFlag != "" {
		loc = &brand.Location{City: cityFlag, State: stateFlag, Country: countryFlag}
	}

	var profile *brand.BrandProfile
	if demoFlag || nameFlag == "" {
		profile, err = brand.DemoProfile(platform, loc)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("name", profile.Name).Msg("Using demo creator")
	} else {
		profile = &brand.BrandProfile{
			Name:            nameFlag,
			Description:     descriptionFlag,
			Location:        loc,
			PrimaryPlatform: platform,
		}
	}

	lat, lng, hasCoords, err := coordinates(cmd)
	if err != nil {
		return nil, err
	}
	if hasCoords {
		if profile.Location == nil {
			return nil, errors.New("--city and --state are required with coordinates")
		}
		l := *profile.Location
		l.Latitude, l.Longitude = &lat, &lng
		profile.Location = &l
	}

	for _, path := range imageFlags {
		img, err := media.LoadReferenceImage(path, media.DefaultMaxDimension)
		if err != nil {
			return nil, err
		}
		profile.ReferenceImages = append(profile.ReferenceImages, img)
	}

	if err := brand.Validate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// coordinates resolves --lat/--lng or --photo-location. Explicit flags win.
func coordinates(cmd *cobra.Command) (lat, lng float64, ok bool, err error) {
	flags := cmd.Flags()
	latSet, lngSet := flags.Changed("lat"), flags.Changed("lng")
	switch {
	case latSet && lngSet:
		return latFlag, lngFlag, true, nil
	case latSet || lngSet:
		return 0, 0, false, errors.New("--lat and --lng must be given together")
	case strings.TrimSpace(photoLocationFlag) != "":
		lat, lng, err := media.PhotoCoordinatesFromFile(photoLocationFlag)
		if err != nil {
			return 0, 0, false, err
		}
		log.Info().Float64("lat", lat).Float64("lng", lng).Msg("Using photo location")
		return lat, lng, true, nil
	}
	return 0, 0, false, nil
}
