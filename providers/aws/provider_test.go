package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEC2Client implements EC2API for testing.
type mockEC2Client struct {
	describeAddressesFunc func(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	releaseAddressFunc    func(ctx context.Context, params *ec2.ReleaseAddressInput, optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)
}

func (m *mockEC2Client) DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
	if m.describeAddressesFunc != nil {
		return m.describeAddressesFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeAddressesOutput{}, nil
}

func (m *mockEC2Client) ReleaseAddress(ctx context.Context, params *ec2.ReleaseAddressInput, optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error) {
	if m.releaseAddressFunc != nil {
		return m.releaseAddressFunc(ctx, params, optFns...)
	}
	return &ec2.ReleaseAddressOutput{}, nil
}

func TestListElasticIPs(t *testing.T) {
	mock := &mockEC2Client{
		describeAddressesFunc: func(_ context.Context, _ *ec2.DescribeAddressesInput, _ ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
			return &ec2.DescribeAddressesOutput{
				Addresses: []ec2types.Address{
					{
						AllocationId: aws.String("eipalloc-1"),
						PublicIp:     aws.String("203.0.113.10"),
						InstanceId:   aws.String("i-abc123"),
						Tags: []ec2types.Tag{
							{Key: aws.String("ManagedBy"), Value: aws.String("ManageEIPs")},
							{Key: aws.String("Name"), Value: aws.String("nat-eip")},
						},
					},
					{
						AllocationId: aws.String("eipalloc-2"),
						PublicIp:     aws.String("203.0.113.11"),
					},
				},
			}, nil
		},
	}

	p := NewWithClient("us-east-1", mock)
	eips, err := p.ListElasticIPs(context.Background())

	require.NoError(t, err)
	require.Len(t, eips, 2)

	assert.Equal(t, "eipalloc-1", eips[0].AllocationID)
	assert.Equal(t, "203.0.113.10", eips[0].PublicIP)
	assert.Equal(t, "i-abc123", eips[0].InstanceID)
	assert.True(t, eips[0].IsAssociated())
	assert.Equal(t, "ManageEIPs", eips[0].Tag("ManagedBy"))
	assert.Equal(t, "nat-eip", eips[0].Tag("Name"))

	assert.Equal(t, "eipalloc-2", eips[1].AllocationID)
	assert.False(t, eips[1].IsAssociated())
	assert.Nil(t, eips[1].Tags)
}

func TestListElasticIPs_DuplicateTagKeysLastWriteWins(t *testing.T) {
	mock := &mockEC2Client{
		describeAddressesFunc: func(_ context.Context, _ *ec2.DescribeAddressesInput, _ ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
			return &ec2.DescribeAddressesOutput{
				Addresses: []ec2types.Address{
					{
						AllocationId: aws.String("eipalloc-1"),
						Tags: []ec2types.Tag{
							{Key: aws.String("ManagedBy"), Value: aws.String("terraform")},
							{Key: aws.String("ManagedBy"), Value: aws.String("ManageEIPs")},
						},
					},
				},
			}, nil
		},
	}

	p := NewWithClient("us-east-1", mock)
	eips, err := p.ListElasticIPs(context.Background())

	require.NoError(t, err)
	require.Len(t, eips, 1)
	assert.Equal(t, "ManageEIPs", eips[0].Tag("ManagedBy"))
}

func TestListElasticIPs_Error(t *testing.T) {
	mock := &mockEC2Client{
		describeAddressesFunc: func(_ context.Context, _ *ec2.DescribeAddressesInput, _ ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
			return nil, errors.New("boom")
		},
	}

	p := NewWithClient("us-east-1", mock)
	_, err := p.ListElasticIPs(context.Background())
	assert.Error(t, err)
}

func TestReleaseElasticIP(t *testing.T) {
	var gotAllocationID string
	mock := &mockEC2Client{
		releaseAddressFunc: func(_ context.Context, params *ec2.ReleaseAddressInput, _ ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error) {
			gotAllocationID = aws.ToString(params.AllocationId)
			return &ec2.ReleaseAddressOutput{}, nil
		},
	}

	p := NewWithClient("us-east-1", mock)
	require.NoError(t, p.ReleaseElasticIP(context.Background(), "eipalloc-9"))
	assert.Equal(t, "eipalloc-9", gotAllocationID)
}

func TestProviderIdentity(t *testing.T) {
	p := NewWithClient("eu-west-1", &mockEC2Client{})
	assert.Equal(t, "aws", p.Name())
	assert.Equal(t, "eu-west-1", p.Region())
}
