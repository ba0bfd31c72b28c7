// File: internal/stack/status.go
// Brief: Read-only stack status report.

package stack

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/stackctl/internal/kube"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

type StatusOptions struct {
	Context   string
	Project   string
	Namespace string

	// Resources appends live pod CPU/memory usage from the metrics API.
	Resources bool
}

// DeploymentRow is one deployment entry of the status report. Field order
// here fixes the YAML rendering order.
type DeploymentRow struct {
	Name                string `yaml:"name"`
	DesiredReplicas     int32  `yaml:"desiredReplicas"`
	AvailableReplicas   int32  `yaml:"availableReplicas"`
	UnavailableReplicas int32  `yaml:"unavailableReplicas"`
	Tag                 string `yaml:"tag"`
}

type PortRow struct {
	Name       string `yaml:"name,omitempty"`
	Port       int32  `yaml:"port"`
	TargetPort string `yaml:"targetPort,omitempty"`
	NodePort   int32  `yaml:"nodePort,omitempty"`
	Protocol   string `yaml:"protocol,omitempty"`
}

type ServiceStatus struct {
	LoadBalancer []string `yaml:"loadBalancer"`
}

type ServiceRow struct {
	Target    string        `yaml:"target"`
	ClusterIP string        `yaml:"clusterIP"`
	Ports     []PortRow     `yaml:"ports"`
	Status    ServiceStatus `yaml:"status"`
}

type UsageRow struct {
	Pod       string `yaml:"pod"`
	Container string `yaml:"container"`
	CPU       string `yaml:"cpu"`
	Memory    string `yaml:"memory"`
}

// RunStatus queries the stack's Deployments and Services (selected by the
// project's app label) and renders the report.
func RunStatus(ctx context.Context, opts StatusOptions, client *kube.Client, out io.Writer) error {
	selector := metav1.ListOptions{LabelSelector: "app=" + opts.Project}

	deployments, err := client.Clientset.AppsV1().Deployments(opts.Namespace).List(ctx, selector)
	if err != nil {
		return fmt.Errorf("list deployments: %w", err)
	}
	services, err := client.Clientset.CoreV1().Services(opts.Namespace).List(ctx, selector)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}

	fmt.Fprintln(out)
	printGreen(out, "Stack %s status", opts.Context)
	fmt.Fprintln(out)

	printSection(out, "Deployments")
	if err := renderYAML(out, deploymentRows(deployments.Items)); err != nil {
		return err
	}
	fmt.Fprintln(out)

	printSection(out, "Services")
	if err := renderYAML(out, serviceRows(services.Items)); err != nil {
		return err
	}

	if !opts.Resources {
		return nil
	}

	metrics, err := client.Metrics.MetricsV1beta1().PodMetricses(opts.Namespace).List(ctx, selector)
	if err != nil {
		return fmt.Errorf("list pod metrics: %w", err)
	}
	rows := make([]UsageRow, 0, len(metrics.Items))
	for _, pod := range metrics.Items {
		for _, c := range pod.Containers {
			rows = append(rows, UsageRow{
				Pod:       pod.Name,
				Container: c.Name,
				CPU:       c.Usage.Cpu().String(),
				Memory:    c.Usage.Memory().String(),
			})
		}
	}
	fmt.Fprintln(out)
	printSection(out, "Resources")
	return renderYAML(out, rows)
}

func deploymentRows(items []appsv1.Deployment) []DeploymentRow {
	rows := make([]DeploymentRow, 0, len(items))
	for _, item := range items {
		var desired int32
		if item.Spec.Replicas != nil {
			desired = *item.Spec.Replicas
		}
		rows = append(rows, DeploymentRow{
			Name:                item.Name,
			DesiredReplicas:     desired,
			AvailableReplicas:   item.Status.AvailableReplicas,
			UnavailableReplicas: item.Status.UnavailableReplicas,
			Tag:                 deploymentTag(item),
		})
	}
	return rows
}

func deploymentTag(item appsv1.Deployment) string {
	containers := item.Spec.Template.Spec.Containers
	if len(containers) == 0 {
		return ""
	}
	return imageTag(containers[0].Image)
}

// imageTag extracts the tag from an image reference, tolerating registry
// hosts that carry a port (e.g. registry.example.com:5000/app:v3).
func imageTag(image string) string {
	slash := strings.LastIndex(image, "/")
	colon := strings.LastIndex(image, ":")
	if colon <= slash {
		return "latest"
	}
	return image[colon+1:]
}

func serviceRows(items []corev1.Service) []ServiceRow {
	rows := make([]ServiceRow, 0, len(items))
	for _, item := range items {
		ports := make([]PortRow, 0, len(item.Spec.Ports))
		for _, p := range item.Spec.Ports {
			row := PortRow{
				Name:     p.Name,
				Port:     p.Port,
				NodePort: p.NodePort,
				Protocol: string(p.Protocol),
			}
			if p.TargetPort.String() != "0" {
				row.TargetPort = p.TargetPort.String()
			}
			ports = append(ports, row)
		}
		lb := make([]string, 0, len(item.Status.LoadBalancer.Ingress))
		for _, ing := range item.Status.LoadBalancer.Ingress {
			if ing.Hostname != "" {
				lb = append(lb, ing.Hostname)
			} else if ing.IP != "" {
				lb = append(lb, ing.IP)
			}
		}
		rows = append(rows, ServiceRow{
			Target:    item.Spec.Selector["app"],
			ClusterIP: item.Spec.ClusterIP,
			Ports:     ports,
			Status:    ServiceStatus{LoadBalancer: lb},
		})
	}
	return rows
}
