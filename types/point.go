// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point2D is a COMPARABLE value for a NEAREST axis whose distance metric is
// planar Euclidean distance.
type Point2D struct {
	X, Y float64
}

// Distance returns the Euclidean distance between two points.
func (p Point2D) Distance(o Point2D) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point2D) String() string {
	return fmt.Sprintf("%v,%v", p.X, p.Y)
}

// Point3D is a COMPARABLE value for a NEAREST axis whose distance metric is
// 3-D Euclidean distance.
type Point3D struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between two points.
func (p Point3D) Distance(o Point3D) float64 {
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Point3D) String() string {
	return fmt.Sprintf("%v,%v,%v", p.X, p.Y, p.Z)
}

// LatLon is a COMPARABLE value for a NEAREST axis whose distance metric is
// great-circle (geodesic) distance.
type LatLon struct {
	Lat, Lon float64
}

const earthRadiusKm = 6371.0088

// Distance returns the haversine great-circle distance in kilometers.
func (p LatLon) Distance(o LatLon) float64 {
	lat1, lat2 := deg2rad(p.Lat), deg2rad(o.Lat)
	dLat := deg2rad(o.Lat - p.Lat)
	dLon := deg2rad(o.Lon - p.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

func (p LatLon) String() string {
	return fmt.Sprintf("%v,%v", p.Lat, p.Lon)
}

// ParsePoint2D parses the textual column spec "x,y" (§4.1).
func ParsePoint2D(s string) (Point2D, error) {
	parts, err := splitCoords(s, 2)
	if err != nil {
		return Point2D{}, err
	}
	return Point2D{X: parts[0], Y: parts[1]}, nil
}

// ParsePoint3D parses the textual column spec "x,y,z" (§4.1).
func ParsePoint3D(s string) (Point3D, error) {
	parts, err := splitCoords(s, 3)
	if err != nil {
		return Point3D{}, err
	}
	return Point3D{X: parts[0], Y: parts[1], Z: parts[2]}, nil
}

// ParseLatLon parses the textual column spec "lat,lon" (§4.1).
func ParseLatLon(s string) (LatLon, error) {
	parts, err := splitCoords(s, 2)
	if err != nil {
		return LatLon{}, err
	}
	return LatLon{Lat: parts[0], Lon: parts[1]}, nil
}

func splitCoords(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d comma-separated coordinates, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q is not numeric: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}
