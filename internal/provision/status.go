package provision

import (
	"context"
)

// Status reports whether the worker domain is protected, without mutating
// remote state. Unlike Run's short circuit, it also checks that the matched
// application has at least one policy, so a run that died between
// application and policy creation is visible.
func (p *Provisioner) Status(ctx context.Context) error {
	domain, err := WorkerDomain(p.cfg.WorkerURL)
	if err != nil {
		return err
	}

	p.rep.Section("Access status for " + domain)

	apps, err := p.cf.ListAccessApps(ctx)
	if err != nil {
		return err
	}

	for _, app := range apps {
		if app.Domain != domain {
			continue
		}

		p.rep.Successf("Protected by Access application %s (%s)", app.Name, app.ID)

		policies, err := p.cf.ListAccessPolicies(ctx, app.ID)
		if err != nil {
			return err
		}
		if len(policies) == 0 {
			p.rep.Warnf("Application has no policies: nobody can authenticate")
			p.rep.Infof("Rerun will not fix this; delete the application in the dashboard and provision again")
		}
		for _, policy := range policies {
			p.rep.Infof("Policy: %s (%s, decision %s)", policy.Name, policy.ID, policy.Decision)
		}
		p.rep.Infof("Dashboard: %s", p.dashboardURL())
		return nil
	}

	p.rep.Warnf("No Access application protects %s", domain)
	p.rep.Infof("Run 'mahoraga-access provision' to create one")
	return nil
}
