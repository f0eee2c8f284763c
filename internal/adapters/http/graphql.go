package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	directionsLinkType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DirectionsLink",
		Fields: graphql.Fields{
			"provider": &graphql.Field{Type: graphql.String},
			"label":    &graphql.Field{Type: graphql.String},
			"url":      &graphql.Field{Type: graphql.String},
		},
	})

	chatLinkType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ChatLink",
		Fields: graphql.Fields{
			"phone":   &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
			"url":     &graphql.Field{Type: graphql.String},
		},
	})

	stationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Station",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"name":        &graphql.Field{Type: graphql.String},
			"address":     &graphql.Field{Type: graphql.String},
			"region":      &graphql.Field{Type: graphql.String},
			"hours":       &graphql.Field{Type: graphql.String},
			"phone":       &graphql.Field{Type: graphql.String},
			"services":    &graphql.Field{Type: graphql.NewList(graphql.String)},
			"coordinates": &graphql.Field{Type: geoPointType},
			"distance":    &graphql.Field{Type: graphql.Float},
			"directions": &graphql.Field{
				Type: graphql.NewList(directionsLinkType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, _ := p.Source.(domain.Station)
					return deps.Directions.Links(st), nil
				},
			},
			"chat": &graphql.Field{
				Type: chatLinkType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, _ := p.Source.(domain.Station)
					return deps.Chat.StationLink(st)
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"stations": &graphql.Field{
				Type:        graphql.NewList(stationType),
				Description: "Stations whose name, address or region contains q",
				Args: graphql.FieldConfigArgument{
					"q": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q, _ := p.Args["q"].(string)
					return deps.Stations.Search(p.Context, q)
				},
			},
			"station": &graphql.Field{
				Type:        stationType,
				Description: "Get a station by id",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					st, err := deps.Stations.GetByID(p.Context, id)
					if err != nil {
						return nil, err
					}
					return *st, nil
				},
			},
			"nearbyStations": &graphql.Field{
				Type:        graphql.NewList(stationType),
				Description: "Stations near a point, nearest first",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 50000.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat, _ := p.Args["lat"].(float64)
					lon, _ := p.Args["lon"].(float64)
					radius, _ := p.Args["radius"].(float64)
					limit, _ := p.Args["limit"].(int)
					return deps.Stations.FindNearby(p.Context, lat, lon, radius, limit)
				},
			},
			"regions": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Stations.Regions(p.Context)
				},
			},
			"quickMessages": &graphql.Field{
				Type:        graphql.NewList(chatLinkType),
				Description: "Chat links for the canned quick messages",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Chat.QuickLinks(), nil
				},
			},
			"chatLink": &graphql.Field{
				Type:        chatLinkType,
				Description: "Chat link pre-filled with free text",
				Args: graphql.FieldConfigArgument{
					"text": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					text, _ := p.Args["text"].(string)
					return deps.Chat.TextLink(text)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
