package topology

import "topology-builder/internal/model"

// Group partitions components by role, keeping their order. Components with
// an unknown role are dropped.
func Group(components []*model.Component) model.BuilderConfig {
	cfg := model.BuilderConfig{
		Ingress:    []*model.Component{},
		Processing: []*model.Component{},
		Egress:     []*model.Component{},
	}
	for _, c := range components {
		switch c.Role {
		case model.RoleIngress:
			cfg.Ingress = append(cfg.Ingress, c)
		case model.RoleProcessing:
			cfg.Processing = append(cfg.Processing, c)
		case model.RoleEgress:
			cfg.Egress = append(cfg.Egress, c)
		}
	}
	return cfg
}
