// Package aws implements Elastic IP discovery and release against EC2.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/finopslab/eipreaper/types"
)

// EC2API is the narrow EC2 surface used by the provider, kept as an
// interface for testability.
type EC2API interface {
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	ReleaseAddress(ctx context.Context, params *ec2.ReleaseAddressInput, optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)
}

// Provider discovers and releases Elastic IPs in one region.
type Provider struct {
	region    string
	ec2Client EC2API
}

// New creates a provider using the default AWS credential chain.
func New(ctx context.Context, region string) (*Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Provider{
		region:    region,
		ec2Client: ec2.NewFromConfig(awsCfg),
	}, nil
}

// NewWithClient wires an explicit EC2 client. Used by tests.
func NewWithClient(region string, client EC2API) *Provider {
	return &Provider{region: region, ec2Client: client}
}

// Name returns the provider identifier.
func (p *Provider) Name() string { return "aws" }

// Region returns the configured region.
func (p *Provider) Region() string { return p.region }

// ListElasticIPs takes a snapshot of every allocated address in the region.
// DescribeAddresses is not paginated; account-level address counts are small.
func (p *Provider) ListElasticIPs(ctx context.Context) ([]types.ElasticIP, error) {
	output, err := p.ec2Client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("describe addresses: %w", err)
	}

	eips := make([]types.ElasticIP, 0, len(output.Addresses))
	for _, addr := range output.Addresses {
		eips = append(eips, convertAddress(addr))
	}
	return eips, nil
}

// ReleaseElasticIP releases one address by allocation ID.
func (p *Provider) ReleaseElasticIP(ctx context.Context, allocationID string) error {
	_, err := p.ec2Client.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
		AllocationId: aws.String(allocationID),
	})
	if err != nil {
		return fmt.Errorf("release address %s: %w", allocationID, err)
	}
	return nil
}

// convertAddress maps the EC2 address shape to a snapshot. The tag list is
// converted to a map once, last write wins on duplicate keys.
func convertAddress(addr ec2types.Address) types.ElasticIP {
	return types.ElasticIP{
		AllocationID:       aws.ToString(addr.AllocationId),
		PublicIP:           aws.ToString(addr.PublicIp),
		InstanceID:         aws.ToString(addr.InstanceId),
		NetworkInterfaceID: aws.ToString(addr.NetworkInterfaceId),
		Tags:               convertTags(addr.Tags),
	}
}

func convertTags(tags []ec2types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return m
}
